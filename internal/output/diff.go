// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/curl2py/internal/request"
)

// Diff writes a structural diff of two request contexts to w. It reports
// whether the contexts differ.
func Diff(w io.Writer, a, b *request.Request, color bool) (bool, error) {
	left, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("failed to marshal left request: %w", err)
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false, fmt.Errorf("failed to marshal right request: %w", err)
	}

	d, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare requests: %w", err)
	}
	if !d.Modified() {
		return false, nil
	}

	var leftDoc map[string]interface{}
	if err := json.Unmarshal(left, &leftDoc); err != nil {
		return true, err
	}

	f := formatter.NewAsciiFormatter(leftDoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color && IsTerminal(w),
	})
	out, err := f.Format(d)
	if err != nil {
		return true, fmt.Errorf("failed to format diff: %w", err)
	}

	_, err = io.WriteString(w, out)
	return true, err
}
