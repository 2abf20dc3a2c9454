// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package render turns a request.Request into source text. Python output is
// byte-for-byte stable so it can be compared against snapshots.
package render
