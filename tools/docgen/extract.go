// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"regexp"
	"strings"
)

var h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// summary is the first paragraph after the H1 title, or the title itself.
func summary(md string) string {
	loc := h1Re.FindStringSubmatchIndex(md)
	if loc == nil {
		return ""
	}
	title := strings.TrimSpace(md[loc[2]:loc[3]])

	var b strings.Builder
	for _, ln := range strings.Split(md[loc[1]:], "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			if b.Len() > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(ln, "#") || strings.HasPrefix(ln, "```") {
			break
		}
		b.WriteString(ln)
		b.WriteString(" ")
	}

	if s := strings.TrimSpace(b.String()); s != "" {
		return s
	}
	return title
}

type example struct {
	Desc string
	Cmd  string
}

// examples reads the first fenced block after an "Examples" header. A "#"
// line describes the command line that follows it.
func examples(md string) []example {
	idx := strings.Index(strings.ToLower(md), "## examples")
	if idx < 0 {
		return nil
	}
	rest := md[idx:]

	const fence = "```"
	start := strings.Index(rest, fence)
	if start < 0 {
		return nil
	}
	rest = rest[start+len(fence):]
	// Drop the info string, if any.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, fence)
	if end < 0 {
		return nil
	}

	var (
		exs  []example
		desc string
	)
	for _, ln := range strings.Split(rest[:end], "\n") {
		ln = strings.TrimSpace(ln)
		switch {
		case ln == "":
		case strings.HasPrefix(ln, "#"):
			desc = strings.TrimSpace(strings.TrimLeft(ln, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(ln), " ")})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(cmd, short string, exs []example) string {
	var b strings.Builder
	b.WriteString("# curl2py-" + cmd + "\n\n")
	if short == "" {
		short = "curl2py " + cmd
	}
	b.WriteString("> " + short + "\n")
	b.WriteString("> More information: https://github.com/staranto/curl2py.\n\n")

	if len(exs) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`curl2py " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + ex.Desc + ":\n\n")
		b.WriteString("`" + ex.Cmd + "`\n")
	}
	return b.String()
}
