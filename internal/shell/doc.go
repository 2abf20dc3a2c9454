// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package shell splits command strings into words using POSIX quoting rules
// and quotes words back into a command string.
package shell
