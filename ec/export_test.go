// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import "sync/atomic"

// Urgent adds n pending ExecuteUrgent callers to d.
func Urgent(d *Dev, n int32) { atomic.AddInt32(&d.urgent, n) }
