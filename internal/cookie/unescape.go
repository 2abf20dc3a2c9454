// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cookie

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var simpleEscapes = map[byte]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// unescape decodes backslash escapes the way a unicode-escape codec does:
// \x, \u and \U name code points, \ooo is octal, unknown escapes are kept
// verbatim and backslash-newline is dropped.
func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' {
			_, size := utf8.DecodeRuneInString(s[i:])
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		if i+1 >= len(s) {
			return "", errors.New(`\ at end of string`)
		}

		e := s[i+1]
		if r, ok := simpleEscapes[e]; ok {
			b.WriteRune(r)
			i += 2
			continue
		}

		switch {
		case e == '\n':
			i += 2
		case e >= '0' && e <= '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			n, _ := strconv.ParseUint(s[i+1:j], 8, 32)
			b.WriteRune(rune(n))
			i = j
		case e == 'x', e == 'u', e == 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			r, err := hexRune(s, i+2, width)
			if err != nil {
				return "", fmt.Errorf(`truncated \%c escape at position %d`, e, i)
			}
			if r > utf8.MaxRune {
				return "", fmt.Errorf(`illegal Unicode character in \U escape at position %d`, i)
			}
			b.WriteRune(r)
			i += 2 + width
		case e == 'N':
			return "", fmt.Errorf(`named escape \N at position %d is not supported`, i)
		default:
			b.WriteByte('\\')
			i++
		}
	}

	return b.String(), nil
}

func hexRune(s string, start, width int) (rune, error) {
	if start+width > len(s) {
		return 0, errors.New("short escape")
	}
	n, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(n), nil
}
