// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package itm

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/dropbox/godropbox/errors"
	"go.uber.org/zap"
)

// DefaultPath is used when Options.Path is empty. It is resolved against the
// working directory.
const DefaultPath = "lib/" + defaultLibName

// Options for opening the library. All fields are optional.
type Options struct {
	Path    string      // Native module path. Defaults to DefaultPath.
	Profile Profile     // Which entry points to bind. Defaults to ProfileGeneral.
	Logger  *zap.Logger // Defaults to a no-op logger.
}

// Library is one loaded native ITM module and its bound entry points.
//
// Calls are serialized on an internal mutex: the native code mutates shared
// structures and is not documented as thread-safe. Open a second Library for
// independent use.
type Library struct {
	mu      sync.Mutex
	handle  uintptr
	path    string
	profile Profile
	version float64
	nat     *natives
	bound   map[string]bool
	log     *zap.Logger
	closed  bool
}

// Open loads the native module and binds every entry point of the profile.
// A missing file yields *ModuleNotFoundError, a missing export yields
// *SymbolNotFoundError. No partially bound Library is ever returned.
func Open(opts *Options) (*Library, error) {
	path, profile, log := resolveOpts(opts)

	if err := checkReadable(path); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	handle, err := loadLibrary(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "itm: failed to load %s: ", absPath)
	}

	nat := &natives{}
	bound, err := bindAll(nat, handle, path, profile)
	if err != nil {
		log.Error("binding native symbols", zap.String("path", path), zap.Error(err))
		if cerr := closeLibrary(handle); cerr != nil {
			log.Warn("unloading after bind failure", zap.Error(cerr))
		}
		return nil, err
	}

	lib := &Library{
		handle:  handle,
		path:    path,
		profile: profile,
		nat:     nat,
		bound:   bound,
		log:     log,
	}
	lib.version = nat.version()
	log.Info("itm library loaded",
		zap.String("path", path),
		zap.Stringer("profile", profile),
		zap.Float64("version", lib.version))
	return lib, nil
}

func resolveOpts(opts *Options) (string, Profile, *zap.Logger) {
	path := DefaultPath
	profile := ProfileGeneral
	log := zap.NewNop()
	if opts != nil {
		if opts.Path != "" {
			path = opts.Path
		}
		profile = opts.Profile
		if opts.Logger != nil {
			log = opts.Logger
		}
	}
	return path, profile, log
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ModuleNotFoundError{Path: path, Err: err}
	}
	return f.Close()
}

// Version returns the native library version read once by Open.
func (l *Library) Version() float64 {
	return l.version
}

// Path returns the module path as it was requested.
func (l *Library) Path() string {
	return l.path
}

// Profile returns the profile the library was bound with.
func (l *Library) Profile() Profile {
	return l.profile
}

// Close unloads the native module. Subsequent calls return ErrClosed.
// Close is idempotent.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.nat = nil
	l.bound = nil
	h := l.handle
	l.handle = 0
	l.log.Debug("itm library closed", zap.String("path", l.path))
	if h == 0 {
		return nil
	}
	if err := closeLibrary(h); err != nil {
		return errors.Wrapf(err, "itm: failed to unload %s: ", l.path)
	}
	return nil
}

// enter takes the call lock and checks the library can serve symbol. On
// success the caller must release l.mu.
func (l *Library) enter(symbol string) (*natives, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrClosed
	}
	if !l.bound[symbol] {
		l.mu.Unlock()
		return nil, notInProfile(symbol, l.profile)
	}
	return l.nat, nil
}
