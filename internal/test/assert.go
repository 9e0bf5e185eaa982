// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package test provides assertions shared by the package tests,
//
//	assert := test.Assert{t}
//	assert.Nil(err)
package test

import (
	"bytes"
	"errors"
	"regexp"
	"testing"
)

// Assert fails the wrapped test at the first mismatch.
type Assert struct {
	testing.TB
}

func (assert Assert) Nil(err error) {
	assert.Helper()
	if err != nil {
		assert.Fatal("unexpected error: ", err)
	}
}

func (assert Assert) NonNil(err error) {
	assert.Helper()
	if err == nil {
		assert.Fatal("missing error")
	}
}

// Error matches err against want, which may be
//
//	error		with errors.Is
//	string		to the whole of err.Error()
//	*regexp.Regexp	against err.Error()
//	bool		true for any error, false for none
func (assert Assert) Error(err error, want interface{}) {
	assert.Helper()
	var ok bool
	switch w := want.(type) {
	case error:
		ok = errors.Is(err, w)
	case string:
		ok = err != nil && err.Error() == w
	case *regexp.Regexp:
		ok = err != nil && w.MatchString(err.Error())
	case bool:
		ok = (err != nil) == w
	default:
		assert.Fatalf("%T: can't match an error", want)
	}
	if !ok {
		assert.Fatalf("error %v, want %v", err, want)
	}
}

func (assert Assert) Equal(got, want string) {
	assert.Helper()
	if got != want {
		assert.Fatalf("got %q\n\twant %q", got, want)
	}
}

func (assert Assert) Bytes(got, want []byte) {
	assert.Helper()
	if !bytes.Equal(got, want) {
		assert.Fatalf("got % x\n\twant % x", got, want)
	}
}

func (assert Assert) Int(got, want int) {
	assert.Helper()
	if got != want {
		assert.Fatalf("got %d (%#x) want %d (%#x)", got, got, want, want)
	}
}

func (assert Assert) True(cond bool) {
	assert.Helper()
	if !cond {
		assert.Fatal("false")
	}
}

func (assert Assert) False(cond bool) {
	assert.Helper()
	if cond {
		assert.Fatal("true")
	}
}
