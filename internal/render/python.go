// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/staranto/curl2py/internal/request"
)

const indent = "    "

// Python renders req as a python-requests call. extras are emitted verbatim
// as additional keyword arguments, sorted by name. The output is stable for
// a given input.
func Python(req *request.Request, extras map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "requests.%s(\"%s\",\n", req.Method, req.URL)

	keys := make([]string, 0, len(extras))
	for k := range extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s%s=%s,\n", indent, k, extras[k])
	}

	if req.Data != "" {
		fmt.Fprintf(&b, "%sdata='%s',\n", indent, req.Data)
	}

	fmt.Fprintf(&b, "%sheaders=%s,\n", indent, Dict(req.Headers))
	fmt.Fprintf(&b, "%scookies=%s,\n", indent, Dict(req.Cookies))
	fmt.Fprintf(&b, "%sauth=%s,", indent, Tuple(req.Auth))
	fmt.Fprintf(&b, "\n%sproxies=%s,", indent, Dict(req.Proxies))

	if req.Insecure {
		fmt.Fprintf(&b, "\n%sverify=False", indent)
	}

	b.WriteString("\n)")

	return b.String()
}

// Dict renders fields as an indented JSON object with sorted keys. Lines
// after the first are shifted one level so the literal nests under a keyword
// argument. An empty mapping renders as {}.
func Dict(fields request.Fields) string {
	if fields.Len() == 0 {
		return "{}"
	}

	sorted := fields.Sorted()
	lines := make([]string, 0, len(sorted)+2)
	lines = append(lines, "{")
	for i, f := range sorted {
		line := indent + jsonString(f.Name) + ": " + jsonString(f.Value)
		if i < len(sorted)-1 {
			line += ","
		}
		lines = append(lines, line)
	}
	lines = append(lines, "}")

	return strings.Join(lines, "\n"+indent)
}

// Tuple renders credentials as a python tuple literal, () when absent.
func Tuple(c *request.Credentials) string {
	if c == nil {
		return "()"
	}
	return "(" + pyRepr(c.Username) + ", " + pyRepr(c.Password) + ")"
}

// jsonString quotes s as a JSON string using only printable ASCII.
func jsonString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// pyRepr quotes s the way python's repr() quotes a str.
func pyRepr(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x7f || unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}
