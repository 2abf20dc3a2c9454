// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package request

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/curl2py/internal/cookie"
	"github.com/staranto/curl2py/internal/curlflags"
)

func parse(t *testing.T, tokens ...string) *curlflags.Args {
	t.Helper()
	args, err := curlflags.Parse(append([]string{"curl", "http://x.test"}, tokens...))
	require.NoError(t, err)
	return args
}

func TestBuild_Method(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{"default get", nil, "get"},
		{"data means post", []string{"--data", "a=b"}, "post"},
		{"binary data means post", []string{"--data-binary", "@file"}, "post"},
		{"empty data still post", []string{"-d", ""}, "post"},
		{"override without data", []string{"-X", "PUT"}, "put"},
		{"override with data", []string{"-X", "PUT", "-d", "a=b"}, "put"},
		{"override is lowercased", []string{"-X", "Patch"}, "patch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(parse(t, tt.tokens...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Method)
		})
	}
}

func TestBuild_Data(t *testing.T) {
	req, err := Build(parse(t, "-d", "x=1", "--data-binary", "y=2"))
	require.NoError(t, err)
	assert.True(t, req.HasData)
	assert.Equal(t, "x=1", req.Data)

	req, err = Build(parse(t, "-d", "", "--data-binary", "x=1"))
	require.NoError(t, err)
	assert.True(t, req.HasData)
	assert.Equal(t, "x=1", req.Data)

	req, err = Build(parse(t, "-d", ""))
	require.NoError(t, err)
	assert.True(t, req.HasData)
	assert.Empty(t, req.Data)

	req, err = Build(parse(t, "--data-raw", "y=2"))
	require.NoError(t, err)
	assert.Equal(t, "y=2", req.Data)

	req, err = Build(parse(t))
	require.NoError(t, err)
	assert.False(t, req.HasData)
	assert.Empty(t, req.Data)
}

func TestBuild_Headers(t *testing.T) {
	req, err := Build(parse(t,
		"-H", "Zeta: last",
		"-H", "Accept:application/json",
		"-H", "X-Blank:   padded  ",
		"-H", "Zeta: again",
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Accept", "X-Blank"}, req.Headers.Names())

	v, ok := req.Headers.Get("Zeta")
	assert.True(t, ok)
	assert.Equal(t, "again", v)

	v, _ = req.Headers.Get("Accept")
	assert.Equal(t, "application/json", v)

	v, _ = req.Headers.Get("X-Blank")
	assert.Equal(t, "padded", v)
}

func TestBuild_CookiePartition(t *testing.T) {
	req, err := Build(parse(t, "-H", "Cookie: a=1; b=2"))
	require.NoError(t, err)

	assert.Equal(t, Fields{{"a", "1"}, {"b", "2"}}, req.Cookies)
	assert.Equal(t, 0, req.Headers.Len())
	_, ok := req.Headers.Get("Cookie")
	assert.False(t, ok)
}

func TestBuild_CookieMerge(t *testing.T) {
	req, err := Build(parse(t,
		"-H", "cookie: a=1; b=2",
		"-H", "Accept: */*",
		"-H", "$COOKIE: a=3; c=4",
	))
	require.NoError(t, err)

	assert.Equal(t, Fields{{"a", "3"}, {"b", "2"}, {"c", "4"}}, req.Cookies)
	assert.Equal(t, []string{"Accept"}, req.Headers.Names())
}

func TestBuild_CookieDecodeError(t *testing.T) {
	req, err := Build(parse(t, "-H", "Cookie: a=1; broken"))
	assert.Nil(t, req)

	var de *cookie.DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestBuild_Auth(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   *Credentials
	}{
		{"absent", nil, nil},
		{"user and password", []string{"-u", "bob:secret"}, &Credentials{"bob", "secret"}},
		{"user only", []string{"-u", "bob"}, &Credentials{"bob", ""}},
		{"split on first colon", []string{"--user", "bob:se:cret"}, &Credentials{"bob", "se:cret"}},
		{"empty password", []string{"-u", "bob:"}, &Credentials{"bob", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(parse(t, tt.tokens...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Auth)
		})
	}
}

func TestBuild_Proxies(t *testing.T) {
	req, err := Build(parse(t))
	require.NoError(t, err)
	assert.Equal(t, 0, req.Proxies.Len())

	req, err = Build(parse(t, "-x", "proxy.example:8080"))
	require.NoError(t, err)
	assert.Equal(t, Fields{
		{"http", "http://proxy.example:8080/"},
		{"https", "http://proxy.example:8080/"},
	}, req.Proxies)

	req, err = Build(parse(t, "-x", "proxy.example:8080", "-U", "alice"))
	require.NoError(t, err)
	assert.Equal(t, Fields{
		{"http", "http://alice@proxy.example:8080/"},
		{"https", "http://alice@proxy.example:8080/"},
	}, req.Proxies)

	req, err = Build(parse(t, "-U", "alice"))
	require.NoError(t, err)
	assert.Equal(t, 0, req.Proxies.Len())
}

func TestBuild_Insecure(t *testing.T) {
	req, err := Build(parse(t, "-k"))
	require.NoError(t, err)
	assert.True(t, req.Insecure)

	req, err = Build(parse(t))
	require.NoError(t, err)
	assert.False(t, req.Insecure)
}

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		raw       string
		wantName  string
		wantValue string
	}{
		{"Accept: */*", "Accept", " */*"},
		{"Accept:*/*", "Accept", "*/*"},
		{"X-Time: 12:30", "X-Time", " 12:30"},
		{":authority: example.com", ":authority", " example.com"},
		{"Empty:", "Empty", ""},
	}

	for _, tt := range tests {
		name, value, err := SplitHeader(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.wantName, name, tt.raw)
		assert.Equal(t, tt.wantValue, value, tt.raw)
	}

	for _, raw := range []string{"NoSeparator", ":pseudo"} {
		_, _, err := SplitHeader(raw)
		var he *HeaderError
		assert.True(t, errors.As(err, &he), raw)
	}
}

func TestIsCookieHeader(t *testing.T) {
	assert.True(t, IsCookieHeader("Cookie"))
	assert.True(t, IsCookieHeader("cookie"))
	assert.True(t, IsCookieHeader("$$Cookie"))
	assert.False(t, IsCookieHeader("Set-Cookie"))
	assert.False(t, IsCookieHeader("Cookies"))
	assert.False(t, IsCookieHeader(" Cookie"))
}

func TestFields(t *testing.T) {
	var f Fields
	f.Set("b", "1")
	f.Set("a", "2")
	f.Set("b", "3")

	assert.Equal(t, Fields{{"b", "3"}, {"a", "2"}}, f)
	assert.Equal(t, Fields{{"a", "2"}, {"b", "3"}}, f.Sorted())
	assert.Equal(t, Fields{{"b", "3"}, {"a", "2"}}, f, "Sorted must not reorder the receiver")

	js, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"3","a":"2"}`, string(js))

	js, err = json.Marshal(Fields{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(js))
}
