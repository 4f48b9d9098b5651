// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package itm

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by every call made after Close.
	ErrClosed = errors.New("itm: library closed")

	// ErrNotInProfile is returned when a method needs a symbol that the
	// library's Profile does not bind.
	ErrNotInProfile = errors.New("itm: symbol not bound by profile")

	// ErrUnknownProfile is returned by ParseProfile.
	ErrUnknownProfile = errors.New("itm: unknown profile")
)

// ModuleNotFoundError reports that the native module could not be opened for
// reading. Path is the path exactly as it was requested.
type ModuleNotFoundError struct {
	Path string
	Err  error
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("itm: native module not found: %s", e.Path)
}

func (e *ModuleNotFoundError) Unwrap() error {
	return e.Err
}

// SymbolNotFoundError reports an exported function missing from the loaded
// module. The library is unloaded before this error is returned.
type SymbolNotFoundError struct {
	Symbol string
	Path   string
	Err    error
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("itm: symbol %q not found in %s", e.Symbol, e.Path)
}

func (e *SymbolNotFoundError) Unwrap() error {
	return e.Err
}

func notInProfile(symbol string, p Profile) error {
	return fmt.Errorf("%s (profile %s): %w", symbol, p, ErrNotInProfile)
}
