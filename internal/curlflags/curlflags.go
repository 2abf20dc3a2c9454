// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package curlflags

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Usage is the synopsis of the accepted curl subset.
const Usage = "usage: curl URL [-d DATA] [-b DATA] [-X METHOD] [-H HEADER]... " +
	"[--compressed] [-k] [-u USER] [-i] [-s] [-x PROXY] [-U PROXY_USER]"

// UsageError reports an unrecognized flag, a missing or surplus positional
// argument, or a malformed flag value.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return Usage + "\n" + e.Reason
}

// Args holds the raw flag values of a curl invocation. Nothing is normalized
// here; see the request package for that.
type Args struct {
	Command string
	URL     string

	Data            string
	DataGiven       bool
	DataBinary      string
	DataBinaryGiven bool

	Method     string
	Headers    []string
	Compressed bool
	Insecure   bool
	User       string
	Include    bool
	Silent     bool
	Proxy      string
	ProxyUser  string
}

// Parse maps tokens onto the flag schema. tokens[0] is expected to be the
// command name, e.g. "curl".
func Parse(tokens []string) (*Args, error) {
	args := &Args{}
	fs := newFlagSet(args)

	if err := fs.Parse(tokens); err != nil {
		return nil, &UsageError{Reason: err.Error()}
	}

	args.DataGiven = fs.Changed("data")
	args.DataBinaryGiven = fs.Changed("data-binary") || fs.Changed("data-raw")

	positionals := fs.Args()
	switch {
	case len(positionals) == 0:
		return nil, &UsageError{Reason: "the following arguments are required: command, url"}
	case len(positionals) == 1:
		return nil, &UsageError{Reason: "the following arguments are required: url"}
	case len(positionals) > 2:
		return nil, &UsageError{
			Reason: fmt.Sprintf("unrecognized arguments: %s", strings.Join(positionals[2:], " ")),
		}
	}

	args.Command, args.URL = positionals[0], positionals[1]

	return args, nil
}

func newFlagSet(args *Args) *pflag.FlagSet {
	fs := pflag.NewFlagSet("curl", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SetInterspersed(true)
	fs.SortFlags = false

	fs.StringVarP(&args.Data, "data", "d", "", "HTTP POST data")
	fs.StringVarP(&args.DataBinary, "data-binary", "b", "", "HTTP POST binary data")
	fs.StringVar(&args.DataBinary, "data-raw", "", "HTTP POST data, '@' allowed")
	fs.StringVarP(&args.Method, "request", "X", "", "request method to use")
	fs.StringArrayVarP(&args.Headers, "header", "H", nil, "pass custom header(s) to server")
	fs.BoolVar(&args.Compressed, "compressed", false, "request compressed response")
	fs.BoolVarP(&args.Insecure, "insecure", "k", false, "allow insecure server connections")
	fs.StringVarP(&args.User, "user", "u", "", "server user and password")
	fs.BoolVarP(&args.Include, "include", "i", false, "include protocol response headers in the output")
	fs.BoolVarP(&args.Silent, "silent", "s", false, "silent mode")
	fs.StringVarP(&args.Proxy, "proxy", "x", "", "use this proxy")
	fs.StringVarP(&args.ProxyUser, "proxy-user", "U", "", "proxy user and password")

	return fs
}
