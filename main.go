// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/staranto/curl2py/internal/cacheutil"
	"github.com/staranto/curl2py/internal/command"
	mylog "github.com/staranto/curl2py/internal/log"
	"github.com/staranto/curl2py/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v, but only ahead of the subcommand so a curl
	// command's own -v survives.
	if a := args[1]; a == "--version" || a == "-v" {
		fmt.Println(version.Version)
		return 0
	}

	// Best-effort: pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments lets a curl command be pasted unquoted after "convert": a
// "--" is inserted in front of the curl word so its flags are not taken as
// curl2py flags.
func mangleArguments(args []string) []string {
	if len(args) < 3 || args[1] != "convert" {
		return args
	}

	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return args
		}
		if a == "curl" || filepath.Base(a) == "curl" {
			mangled := make([]string, 0, len(args)+1)
			mangled = append(mangled, args[:i]...)
			mangled = append(mangled, "--")
			mangled = append(mangled, args[i:]...)
			log.Debugf("args=%v", mangled)
			return mangled
		}
	}

	return args
}
