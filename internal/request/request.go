// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"fmt"
	"strings"

	"github.com/staranto/curl2py/internal/cookie"
	"github.com/staranto/curl2py/internal/curlflags"
)

// Request is the normalized description of a curl invocation. It is built
// once by Build and not modified afterwards.
type Request struct {
	Method string `json:"method"`
	URL    string `json:"url"`

	// Data is the request body. HasData reports whether a body flag was given
	// at all, which is what drives the method default.
	Data    string `json:"data,omitempty"`
	HasData bool   `json:"-"`

	Headers Fields       `json:"headers"`
	Cookies Fields       `json:"cookies"`
	Auth    *Credentials `json:"auth,omitempty"`
	Proxies Fields       `json:"proxies"`

	// Insecure is set when TLS certificate verification should be skipped.
	Insecure bool `json:"insecure"`

	Compressed bool `json:"compressed"`
	Include    bool `json:"-"`
	Silent     bool `json:"-"`
}

// Credentials is a username/password pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HeaderError reports a header flag value that has no name/value separator.
type HeaderError struct {
	Header string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid header %q: missing ':' separator", e.Header)
}

// Build normalizes raw flag values into a Request.
func Build(args *curlflags.Args) (*Request, error) {
	req := &Request{
		URL:        args.URL,
		Insecure:   args.Insecure,
		Compressed: args.Compressed,
		Include:    args.Include,
		Silent:     args.Silent,
		Headers:    Fields{},
		Cookies:    Fields{},
		Proxies:    Fields{},
	}

	// An empty --data falls through to --data-binary.
	req.HasData = args.DataGiven || args.DataBinaryGiven
	req.Data = args.Data
	if req.Data == "" {
		req.Data = args.DataBinary
	}

	req.Method = ResolveMethod(args.Method, req.HasData)

	for _, raw := range args.Headers {
		name, value, err := SplitHeader(raw)
		if err != nil {
			return nil, err
		}

		if IsCookieHeader(name) {
			pairs, err := cookie.Decode(value)
			if err != nil {
				return nil, err
			}
			for _, p := range pairs {
				req.Cookies.Set(p.Name, p.Value)
			}
			continue
		}

		req.Headers.Set(name, strings.TrimSpace(value))
	}

	if args.User != "" {
		username, password, _ := strings.Cut(args.User, ":")
		req.Auth = &Credentials{Username: username, Password: password}
	}

	req.Proxies = ComposeProxies(args.Proxy, args.ProxyUser)

	return req, nil
}

// ResolveMethod picks the lowercase HTTP verb. An explicit override always
// wins, otherwise a body means post.
func ResolveMethod(override string, hasData bool) string {
	switch {
	case override != "":
		return strings.ToLower(override)
	case hasData:
		return "post"
	default:
		return "get"
	}
}

// SplitHeader splits a raw "Name: value" header at the first colon. A raw
// header that itself starts with a colon, such as an HTTP/2 pseudo header,
// is split at its second colon so the name keeps the leading one. The value
// is returned untrimmed.
func SplitHeader(raw string) (name, value string, err error) {
	if strings.HasPrefix(raw, ":") {
		idx := strings.Index(raw[1:], ":")
		if idx < 0 {
			return "", "", &HeaderError{Header: raw}
		}
		return raw[:idx+1], raw[idx+2:], nil
	}

	name, value, ok := strings.Cut(raw, ":")
	if !ok {
		return "", "", &HeaderError{Header: raw}
	}
	return name, value, nil
}

// IsCookieHeader reports whether a header name carries cookies.
func IsCookieHeader(name string) bool {
	return strings.TrimLeft(strings.ToLower(name), "$") == "cookie"
}

// ComposeProxies builds the per-scheme proxy URLs. Both schemes go through
// the same plain http proxy.
func ComposeProxies(proxy, proxyUser string) Fields {
	if proxy == "" {
		return Fields{}
	}

	authority := proxy
	if proxyUser != "" {
		authority = proxyUser + "@" + proxy
	}

	u := fmt.Sprintf("http://%s/", authority)
	return Fields{
		{Name: "http", Value: u},
		{Name: "https", Value: u},
	}
}
