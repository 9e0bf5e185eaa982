// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"fmt"

	"github.com/platinasystems/crosecbus/lpc"
)

// Codec executes one host command round trip: out is sent as the command
// parameters, and the response is copied to in. Command returns the number
// of response bytes. in is untouched unless the whole response was valid.
type Codec interface {
	Command(cmd uint16, version uint8, out, in []byte) (int, error)
}

// wait for the EC to finish the command just triggered.
func wait(w *lpc.Waiter, p lpc.Port) error {
	if err := w.Wait(p, EC_LPC_ADDR_HOST_CMD, EC_LPC_STATUS_BUSY_MASK); err != nil {
		return ErrTimeout
	}
	return nil
}

// status is the result byte the EC leaves in the data register.
func status(p lpc.Port) error {
	if res := p.Inb(EC_LPC_ADDR_HOST_DATA); res != 0 {
		return &ResultError{Result(res)}
	}
	return nil
}

func errCommand(cmd uint16, version uint8, err error) error {
	return fmt.Errorf("command %#x v%d: %w", cmd, version, err)
}
