// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// curl2py is the main package for the curl2py command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
