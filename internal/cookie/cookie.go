// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cookie

import (
	"fmt"
	"strings"
	"unicode"
)

// Pair is a single cookie from a cookie-string.
type Pair struct {
	Name  string
	Value string
}

// DecodeError reports a cookie-string that cannot be decoded. The whole
// string is rejected; no partial result is returned.
type DecodeError struct {
	Input  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid cookie string %q: %s", e.Input, e.Reason)
}

// reserved are the attribute names that describe the preceding cookie rather
// than introduce a new one.
var reserved = map[string]bool{
	"expires":     true,
	"path":        true,
	"comment":     true,
	"domain":      true,
	"max-age":     true,
	"secure":      true,
	"httponly":    true,
	"version":     true,
	"samesite":    true,
	"partitioned": true,
}

// flags are reserved attributes that may appear without a value.
var flags = map[string]bool{
	"secure":      true,
	"httponly":    true,
	"partitioned": true,
}

const extraNameChars = "!#%&'~_`><@,:/$*+-.^|)(?}{="

// Decode parses a semicolon separated list of name=value pairs. Escape
// sequences in raw are decoded first. Pairs are returned in input order and
// may repeat a name.
func Decode(raw string) ([]Pair, error) {
	s, err := unescape(raw)
	if err != nil {
		return nil, &DecodeError{Input: raw, Reason: err.Error()}
	}

	parts, err := splitParts(s)
	if err != nil {
		return nil, &DecodeError{Input: raw, Reason: err.Error()}
	}

	var pairs []Pair
	for _, part := range parts {
		name, value, hasValue := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		lower := strings.ToLower(name)

		switch {
		case name == "":
			return nil, &DecodeError{Input: raw, Reason: "empty cookie name"}
		case strings.HasPrefix(name, "$"):
			continue
		case reserved[lower]:
			if len(pairs) == 0 {
				return nil, &DecodeError{Input: raw, Reason: fmt.Sprintf("attribute %q before any cookie", name)}
			}
			if !hasValue && !flags[lower] {
				return nil, &DecodeError{Input: raw, Reason: fmt.Sprintf("attribute %q requires a value", name)}
			}
			continue
		case !hasValue:
			return nil, &DecodeError{Input: raw, Reason: fmt.Sprintf("cookie %q has no value", name)}
		case !validName(name):
			return nil, &DecodeError{Input: raw, Reason: fmt.Sprintf("illegal character in cookie name %q", name)}
		}

		if isQuoted(value) {
			value = unquote(value)
		} else if !validValue(value) {
			return nil, &DecodeError{Input: raw, Reason: fmt.Sprintf("illegal character in value of cookie %q", name)}
		}

		pairs = append(pairs, Pair{Name: name, Value: value})
	}

	return pairs, nil
}

// splitParts splits on semicolons that are not inside a double-quoted value
// and drops blank parts.
func splitParts(s string) ([]string, error) {
	var (
		parts   []string
		start   int
		quoted  bool
		escaped bool
	)

	flush := func(end int) {
		if p := strings.TrimSpace(s[start:end]); p != "" {
			parts = append(parts, p)
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == ';' && !quoted:
			flush(i)
			start = i + 1
		}
	}

	if quoted {
		return nil, fmt.Errorf("unterminated quoted value")
	}
	flush(len(s))

	return parts, nil
}

func validName(name string) bool {
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune(extraNameChars, r) {
			return false
		}
	}
	return true
}

func validValue(value string) bool {
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune(extraNameChars+"[]", r) {
			return false
		}
	}
	return true
}

func isQuoted(v string) bool {
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"'
}

// unquote strips the surrounding double quotes and resolves \ooo octal and
// \c escapes.
func unquote(v string) string {
	v = v[1 : len(v)-1]
	if !strings.Contains(v, `\`) {
		return v
	}

	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' || i+1 >= len(v) {
			b.WriteByte(v[i])
			continue
		}
		if i+3 < len(v) && isOctal(v[i+1], '3') && isOctal(v[i+2], '7') && isOctal(v[i+3], '7') {
			b.WriteRune(rune((v[i+1]-'0')<<6 | (v[i+2]-'0')<<3 | (v[i+3] - '0')))
			i += 3
			continue
		}
		b.WriteByte(v[i+1])
		i++
	}
	return b.String()
}

func isOctal(c, max byte) bool {
	return c >= '0' && c <= max
}
