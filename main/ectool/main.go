// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is a goes machine of Chrome EC host command tools. Link or copy it
// as one of its command names to run that command directly.
package main

import (
	"github.com/platinasystems/crosecbus/cmd/eccmd"
	"github.com/platinasystems/crosecbus/cmd/ecd"
	"github.com/platinasystems/crosecbus/cmd/ecmem"
	"github.com/platinasystems/crosecbus/cmd/ecprobe"
	"github.com/platinasystems/crosecbus/cmd/ecversion"
	"github.com/platinasystems/crosecbus/cmd/iocmd"
	"github.com/platinasystems/crosecbus/internal/goes"
)

func Goes() *goes.Goes {
	g := goes.New("ectool")
	g.Plot(
		new(eccmd.Command),
		new(ecd.Command),
		new(ecmem.Command),
		new(ecprobe.Command),
		new(ecversion.Command),
		new(iocmd.Command),
	)
	return g
}

func main() {
	Goes().Main()
}
