// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/curl2py/internal/config"
	"github.com/staranto/curl2py/internal/render"
	"github.com/staranto/curl2py/internal/request"
)

// Formats lists the accepted --output values. "code" is handled by the
// caller since it goes through the memoizing converter.
var Formats = []string{"code", "json", "yaml", "text", "hcl"}

// Options controls how a request context is emitted.
type Options struct {
	Format string
	Color  bool
	Titles bool
}

// Spit writes req to w in the requested format.
func Spit(w io.Writer, req *request.Request, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	colorize := opts.Color && IsTerminal(w)
	log.Debugf("spit format=%s color=%v", opts.Format, colorize)

	switch opts.Format {
	case "json":
		doc, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		doc = pretty.Pretty(doc)
		if colorize {
			doc = pretty.Color(doc, pretty.TerminalStyle)
		}
		_, err = w.Write(doc)
		return err
	case "yaml":
		doc, err := yaml.Marshal(MapSlice(req))
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		_, err = w.Write(doc)
		return err
	case "hcl":
		_, err := w.Write(render.HCL(req))
		return err
	case "text":
		TableWriter(req, opts.Titles, colorize, w)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// MapSlice converts req into an ordered yaml document. Headers, cookies and
// proxies keep their first-seen order.
func MapSlice(req *request.Request) yaml.MapSlice {
	doc := yaml.MapSlice{
		{Key: "method", Value: req.Method},
		{Key: "url", Value: req.URL},
	}
	if req.HasData {
		doc = append(doc, yaml.MapItem{Key: "data", Value: req.Data})
	}

	doc = append(doc,
		yaml.MapItem{Key: "headers", Value: fieldsSlice(req.Headers)},
		yaml.MapItem{Key: "cookies", Value: fieldsSlice(req.Cookies)},
	)

	if req.Auth != nil {
		doc = append(doc, yaml.MapItem{Key: "auth", Value: yaml.MapSlice{
			{Key: "username", Value: req.Auth.Username},
			{Key: "password", Value: req.Auth.Password},
		}})
	}

	return append(doc,
		yaml.MapItem{Key: "proxies", Value: fieldsSlice(req.Proxies)},
		yaml.MapItem{Key: "insecure", Value: req.Insecure},
		yaml.MapItem{Key: "compressed", Value: req.Compressed},
	)
}

func fieldsSlice(fields request.Fields) yaml.MapSlice {
	ms := yaml.MapSlice{}
	for _, f := range fields {
		ms = append(ms, yaml.MapItem{Key: f.Name, Value: f.Value})
	}
	return ms
}

// Rows flattens req into attribute/value pairs for tabular output.
func Rows(req *request.Request) [][]string {
	rows := [][]string{
		{"method", req.Method},
		{"url", req.URL},
	}
	if req.HasData {
		rows = append(rows, []string{"data", req.Data})
	}
	for _, f := range req.Headers {
		rows = append(rows, []string{"headers." + f.Name, f.Value})
	}
	for _, f := range req.Cookies {
		rows = append(rows, []string{"cookies." + f.Name, f.Value})
	}
	if req.Auth != nil {
		rows = append(rows,
			[]string{"auth.username", req.Auth.Username},
			[]string{"auth.password", req.Auth.Password},
		)
	}
	for _, f := range req.Proxies {
		rows = append(rows, []string{"proxies." + f.Name, f.Value})
	}
	return append(rows,
		[]string{"insecure", strconv.FormatBool(req.Insecure)},
		[]string{"compressed", strconv.FormatBool(req.Compressed)},
	)
}

// TableWriter renders the request as a two column table honoring color and
// titles options.
func TableWriter(req *request.Request, titles bool, color bool, w io.Writer) {
	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2) //nolint:mnd

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(Rows(req)...)

	if titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("ATTRIBUTE", "VALUE").BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
