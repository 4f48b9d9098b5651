// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build !(windows && amd64)

package itm

import "github.com/dropbox/godropbox/errors"

// registerArgLimit is the most arguments purego.RegisterFunc can pass here;
// 0 means every signature in the table fits.
const registerArgLimit = 0

func bindWide(_ *natives, sig Signature, _ uintptr, _ func(string) (uintptr, error)) error {
	return errors.Newf("itm: no wide-call binding for %s on this platform", sig.Symbol)
}
