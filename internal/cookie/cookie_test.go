// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cookie

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Pair
	}{
		{
			name:  "two cookies",
			input: "a=1; b=2",
			want:  []Pair{{"a", "1"}, {"b", "2"}},
		},
		{
			name:  "leading blank and trailing semicolon",
			input: " a=1;b=2; ",
			want:  []Pair{{"a", "1"}, {"b", "2"}},
		},
		{
			name:  "repeated name kept in order",
			input: "a=1; a=2",
			want:  []Pair{{"a", "1"}, {"a", "2"}},
		},
		{
			name:  "empty value",
			input: "a=",
			want:  []Pair{{"a", ""}},
		},
		{
			name:  "value with equals sign",
			input: "token=abc==",
			want:  []Pair{{"token", "abc=="}},
		},
		{
			name:  "quoted value with semicolon",
			input: `a="x;y"; b=2`,
			want:  []Pair{{"a", "x;y"}, {"b", "2"}},
		},
		{
			name:  "quoted value with octal escape",
			input: `a="\\101b"`,
			want:  []Pair{{"a", "Ab"}},
		},
		{
			name:  "attributes are skipped",
			input: "sid=42; Path=/; Secure; HttpOnly; Max-Age=60",
			want:  []Pair{{"sid", "42"}},
		},
		{
			name:  "mechanism attributes are skipped",
			input: "$Version=1; a=1",
			want:  []Pair{{"a", "1"}},
		},
		{
			name:  "unicode escape",
			input: `name=caf\u00e9`,
			want:  []Pair{{"name", "café"}},
		},
		{
			name:  "hex escape",
			input: `name=\x41`,
			want:  []Pair{{"name", "A"}},
		},
		{
			name:  "non-ascii passes through",
			input: "name=café",
			want:  []Pair{{"name", "café"}},
		},
		{
			name:  "only blanks",
			input: " ; ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"missing value", "a=1; b", `cookie "b" has no value`},
		{"attribute first", "Path=/; a=1", `attribute "Path" before any cookie`},
		{"valued attribute without value", "a=1; Domain", `attribute "Domain" requires a value`},
		{"empty name", "=1", "empty cookie name"},
		{"illegal name", "a b=1", "illegal character in cookie name"},
		{"space in value", "a=x y", "illegal character in value"},
		{"unterminated quote", `a="x`, "unterminated quoted value"},
		{"truncated hex escape", `a=\x4`, `truncated \x escape`},
		{"truncated unicode escape", `a=\u12`, `truncated \u escape`},
		{"trailing backslash", `a=b\`, `\ at end of string`},
		{"named escape", `a=\N{DASH}`, `named escape`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			assert.Nil(t, got)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Contains(t, de.Reason, tt.reason)
			assert.Equal(t, tt.input, de.Input)
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`plain`, `plain`},
		{`a\\b`, `a\b`},
		{`tab\there`, "tab\there"},
		{`\101`, "A"},
		{`\7`, "\a"},
		{`\U0001F600`, "😀"},
		{`\q`, `\q`},
		{"a\\\nb", "ab"},
		{`\"`, `"`},
	}

	for _, tt := range tests {
		got, err := unescape(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}
