// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// IgnoreFile is written into every cache directory so its contents never end
// up under version control.
const IgnoreFile = ".gitignore"

// Dir resolves the base cache directory.
// Precedence:
//  1. CURL2PY_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/curl2py
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("CURL2PY_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "curl2py"), true
	}
	return "", false
}

// Enabled returns true unless CURL2PY_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("CURL2PY_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := EnsureDir(base); err != nil {
		return base, false, err
	}
	return base, true, nil
}

// EnsureDir creates dir and drops an ignore-everything .gitignore into it the
// first time. An existing .gitignore is left alone.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	p := filepath.Join(dir, IgnoreFile)
	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", p, err)
	}

	if err := os.WriteFile(p, []byte("*"), os.FileMode(0o644)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	return nil
}

// EncodeKey hashes k with BLAKE2b-256 and returns the hex string.
func EncodeKey(k string) string {
	sum := blake2b.Sum256([]byte(k))
	return hex.EncodeToString(sum[:])
}
