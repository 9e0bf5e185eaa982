// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package lang selects command help text by locale.
//
// The locale is Lang if set, else $LANG, else Default, else EnUS. Default
// may be set at link time,
//
//	-X github.com/platinasystems/crosecbus/lang.Default=fr_FR.UTF-8
package lang

import "os"

const (
	DeDE = "de_DE.UTF-8"
	EnGB = "en_GB.UTF-8"
	EnUS = "en_US.UTF-8"
	EsES = "es_ES.UTF-8"
	FrFR = "fr_FR.UTF-8"
	JaJP = "ja_JP.UTF-8"
	ZhCN = "zh_CN.UTF-8"
)

var (
	Default = EnUS
	Lang    string
)

// Alt is text keyed by locale.
type Alt map[string]string

func (alt Alt) String() string {
	for _, locale := range [...]string{Lang, os.Getenv("LANG"), Default, EnUS} {
		if len(locale) == 0 {
			continue
		}
		if s, found := alt[locale]; found {
			return s
		}
	}
	return ""
}
