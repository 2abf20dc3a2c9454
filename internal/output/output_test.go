// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/curl2py/internal/request"
)

func sampleRequest() *request.Request {
	return &request.Request{
		Method:  "post",
		URL:     "http://x.test/api",
		Data:    "x=1",
		HasData: true,
		Headers: request.Fields{{Name: "Z-Last", Value: "z"}, {Name: "Accept", Value: "*/*"}},
		Cookies: request.Fields{{Name: "sid", Value: "42"}},
		Auth:    &request.Credentials{Username: "bob", Password: "secret"},
		Proxies: request.ComposeProxies("p:1", ""),
	}
}

func TestSpit_JSON(t *testing.T) {
	t.Setenv("CURL2PY_CFG", "/nonexistent")

	var buf bytes.Buffer
	require.NoError(t, Spit(&buf, sampleRequest(), Options{Format: "json"}))

	doc := buf.String()
	require.True(t, gjson.Valid(doc))

	tests := []struct {
		path string
		want string
	}{
		{"method", "post"},
		{"url", "http://x.test/api"},
		{"data", "x=1"},
		{"headers.Accept", "*/*"},
		{"cookies.sid", "42"},
		{"auth.username", "bob"},
		{"proxies.https", "http://p:1/"},
		{"insecure", "false"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gjson.Get(doc, tt.path).String(), tt.path)
	}

	// Insertion order survives.
	var keys []string
	gjson.Get(doc, "headers").ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	assert.Equal(t, []string{"Z-Last", "Accept"}, keys)
}

func TestSpit_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Spit(&buf, sampleRequest(), Options{Format: "yaml"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "method: post\nurl: http://x.test/api\ndata: x=1\nheaders:\n"))
	assert.Less(t, strings.Index(out, "Z-Last"), strings.Index(out, "Accept"))
	assert.Contains(t, out, "auth:\n  username: bob\n  password: secret\n")
	assert.Contains(t, out, "insecure: false\n")
}

func TestSpit_YAMLNoData(t *testing.T) {
	var buf bytes.Buffer
	req := &request.Request{Method: "get", URL: "http://x.test"}
	require.NoError(t, Spit(&buf, req, Options{Format: "yaml"}))

	assert.NotContains(t, buf.String(), "data:")
	assert.NotContains(t, buf.String(), "auth:")
	assert.Contains(t, buf.String(), "headers: {}\n")
}

func TestSpit_HCL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Spit(&buf, sampleRequest(), Options{Format: "hcl"}))
	assert.True(t, strings.HasPrefix(buf.String(), `request "post" {`))
}

func TestSpit_Text(t *testing.T) {
	t.Setenv("CURL2PY_CFG", "/nonexistent")

	var buf bytes.Buffer
	require.NoError(t, Spit(&buf, sampleRequest(), Options{Format: "text", Titles: true, Color: true}))

	out := buf.String()
	assert.Contains(t, out, "ATTRIBUTE")
	assert.Contains(t, out, "headers.Accept")
	assert.Contains(t, out, "cookies.sid")
	assert.NotContains(t, out, "\x1b[", "color is only applied on a terminal")
}

func TestSpit_Unsupported(t *testing.T) {
	err := Spit(&bytes.Buffer{}, sampleRequest(), Options{Format: "xml"})
	assert.Error(t, err)
}

func TestRows(t *testing.T) {
	rows := Rows(&request.Request{Method: "get", URL: "u", Insecure: true})
	assert.Equal(t, [][]string{
		{"method", "get"},
		{"url", "u"},
		{"insecure", "true"},
		{"compressed", "false"},
	}, rows)
}

func TestDiff(t *testing.T) {
	a := sampleRequest()
	b := sampleRequest()

	var buf bytes.Buffer
	changed, err := Diff(&buf, a, b, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, buf.String())

	b.Method = "put"
	b.Headers = request.Fields{{Name: "Accept", Value: "text/html"}}

	changed, err = Diff(&buf, a, b, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, buf.String(), `-  "method": "post"`)
	assert.Contains(t, buf.String(), `+  "method": "put"`)
	assert.Contains(t, buf.String(), "Z-Last")
}
