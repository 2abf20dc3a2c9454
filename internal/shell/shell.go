// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"fmt"
	"strings"
)

// MalformedCommandError is returned when the quoting of a command string
// cannot be resolved. Offset is the rune offset of the offending quote or
// backslash.
type MalformedCommandError struct {
	Input  string
	Reason string
	Offset int
}

func (e *MalformedCommandError) Error() string {
	return fmt.Sprintf("malformed command: %s at offset %d", e.Reason, e.Offset)
}

// continuations collapses " \<newline>" sequences so a multi-line command
// becomes one logical line.
var continuations = strings.NewReplacer(" \\\r\n", " ", " \\\n", " ")

// NormalizeNewlines removes line continuations together with the space that
// precedes them.
func NormalizeNewlines(s string) string {
	return continuations.Replace(s)
}

// Split breaks s into words the way a POSIX shell would, without performing
// any expansion.
func Split(s string) ([]string, error) {
	var (
		words   []string
		word    strings.Builder
		inWord  bool
		quote   rune
		quoteAt int
	)

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch quote {
		case '\'':
			if r == '\'' {
				quote = 0
			} else {
				word.WriteRune(r)
			}
			continue
		case '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				if i+1 >= len(runes) {
					return nil, malformed(s, "unterminated double quote", quoteAt)
				}
				switch next := runes[i+1]; next {
				case '\\', '"', '$', '`':
					word.WriteRune(next)
					i++
				case '\n':
					i++
				default:
					word.WriteRune(r)
				}
			default:
				word.WriteRune(r)
			}
			continue
		}

		switch {
		case r == '\\':
			if i+1 >= len(runes) {
				return nil, malformed(s, "trailing backslash", i)
			}
			i++
			if runes[i] != '\n' {
				word.WriteRune(runes[i])
				inWord = true
			}
		case r == '\'' || r == '"':
			quote, quoteAt, inWord = r, i, true
		case isBlank(r):
			if inWord {
				words = append(words, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(r)
			inWord = true
		}
	}

	switch quote {
	case '\'':
		return nil, malformed(s, "unterminated single quote", quoteAt)
	case '"':
		return nil, malformed(s, "unterminated double quote", quoteAt)
	}

	if inWord {
		words = append(words, word.String())
	}

	return words, nil
}

// Quote returns w in a form Split reads back as the single word w.
func Quote(w string) string {
	if w == "" {
		return "''"
	}
	if isSafe(w) {
		return w
	}
	return "'" + strings.ReplaceAll(w, "'", `'\''`) + "'"
}

// Join quotes each word and joins them with single spaces.
func Join(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = Quote(w)
	}
	return strings.Join(quoted, " ")
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isSafe(w string) bool {
	for _, r := range w {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("@%+=:,./-_", r):
		default:
			return false
		}
	}
	return true
}

func malformed(input, reason string, offset int) error {
	return &MalformedCommandError{Input: input, Reason: reason, Offset: offset}
}
