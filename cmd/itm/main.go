// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Command itm runs ITM predictions through the native library from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/dropbox/godropbox/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "itm:", errors.GetMessage(err))
		os.Exit(1)
	}
}
