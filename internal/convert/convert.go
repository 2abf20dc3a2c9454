// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/staranto/curl2py/internal/cache"
	"github.com/staranto/curl2py/internal/curlflags"
	"github.com/staranto/curl2py/internal/log"
	"github.com/staranto/curl2py/internal/render"
	"github.com/staranto/curl2py/internal/request"
	"github.com/staranto/curl2py/internal/shell"
)

// ParseContext runs a curl command through the tokenizer, the flag parser and
// the context builder. Any failure rejects the whole command.
func ParseContext(command string) (*request.Request, error) {
	logger := log.Get("convert")

	tokens, err := shell.Split(shell.NormalizeNewlines(command))
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize command: %w", err)
	}
	logger.Debugf("tokens: %q", tokens)

	args, err := curlflags.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to parse curl flags: %w", err)
	}

	req, err := request.Build(args)
	if err != nil {
		return nil, fmt.Errorf("failed to build request context: %w", err)
	}

	logger.Debugf("method=%s url=%s headers=%d cookies=%d",
		req.Method, req.URL, req.Headers.Len(), req.Cookies.Len())
	return req, nil
}

// Convert renders command as a Python requests call. extras become leading
// keyword clauses and are inserted verbatim.
func Convert(command string, extras map[string]string) (string, error) {
	req, err := ParseContext(command)
	if err != nil {
		return "", err
	}
	return render.Python(req, extras), nil
}

// Converter memoizes Convert through a cache store. A Converter with a nil
// store behaves exactly like Convert.
type Converter struct {
	convert func(cache.Args) (string, error)
}

// NewConverter wraps Convert with store. A ttl <= 0 uses cache.DefaultTTL.
func NewConverter(store *cache.Store, ttl time.Duration) *Converter {
	memo := cache.DefaultMemo()
	if ttl > 0 {
		memo.TTL = ttl
	}
	return &Converter{
		convert: cache.Wrap(store, memo, "convert", func(a cache.Args) (string, error) {
			extras, _ := a["extras"].(map[string]string)
			return Convert(a["command"].(string), extras)
		}),
	}
}

// Convert translates command, reusing a stored result when useCache is set
// and one is still live.
func (c *Converter) Convert(command string, extras map[string]string, useCache bool) (string, error) {
	return c.convert(cache.Args{
		"cache_key": Key(command, extras),
		"cache":     useCache,
		"command":   command,
		"extras":    extras,
	})
}

// Key identifies a translation. Extras are folded in sorted so map order never
// changes the key.
func Key(command string, extras map[string]string) string {
	keys := make([]string, 0, len(extras))
	for k := range extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(command)
	for _, k := range keys {
		sb.WriteString("\x00")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(extras[k])
	}
	return sb.String()
}
