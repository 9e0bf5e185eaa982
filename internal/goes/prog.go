// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"os"
	"path/filepath"
	"sync"
)

var prog struct {
	once       sync.Once
	path, base string
}

// Prog is the path of the running executable, or os.Args[0] if /proc is
// unavailable.
func Prog() string {
	prog.once.Do(func() {
		path, err := os.Executable()
		if err != nil && len(os.Args) > 0 {
			path = os.Args[0]
		}
		prog.path, prog.base = path, filepath.Base(path)
	})
	return prog.path
}

// ProgBase is the base name of Prog, used to prefix error messages.
func ProgBase() string {
	Prog()
	return prog.base
}
