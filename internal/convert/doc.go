// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package convert ties the translation pipeline together: tokenize, parse
// flags, build the request context, render.
package convert
