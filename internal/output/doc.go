// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package output emits request contexts as json, yaml, hcl or a text table,
// and renders structural diffs between two contexts.
package output
