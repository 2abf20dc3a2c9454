// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cookie decodes Cookie header values into ordered name/value pairs.
package cookie
