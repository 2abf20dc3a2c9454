// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/curl2py/internal/cache"
	"github.com/staranto/curl2py/internal/cacheutil"
	"github.com/staranto/curl2py/internal/config"
	"github.com/staranto/curl2py/internal/meta"
	"github.com/staranto/curl2py/internal/shell"
)

// GetMeta returns the meta.Meta stored in the Metadata of cmd or its nearest
// ancestor. If none is found it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil {
		return meta.Meta{}
	}
	for _, c := range cmd.Lineage() {
		if m, ok := c.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{}
}

// commandConfig is the config carried in the command's meta, looked up
// under the ns namespace.
func commandConfig(cmd *cli.Command, ns string) config.Type {
	conf := GetMeta(cmd).Config
	conf.Namespace = ns
	return conf
}

// ReadCommand returns the curl command to translate. A single argument is
// taken verbatim; several arguments are re-quoted into one command line; no
// argument, or a lone "-", reads the command from stdin.
func ReadCommand(cmd *cli.Command) (string, error) {
	args := cmd.Args().Slice()

	switch {
	case len(args) == 1 && args[0] != "-":
		return args[0], nil
	case len(args) > 1:
		return shell.Join(args), nil
	}

	r := cmd.Root().Reader
	if r == nil {
		r = os.Stdin
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read command from stdin: %w", err)
	}

	command := strings.TrimSpace(string(b))
	if command == "" {
		return "", errors.New("no curl command given")
	}
	return command, nil
}

// ParseOptions collects extra renderer clauses. Config convert.options are
// the base and repeated --option key=value flags override them.
func ParseOptions(cmd *cli.Command) (map[string]string, error) {
	conf := commandConfig(cmd, "convert")
	extras, err := conf.GetStringMap("convert.options")
	if err != nil {
		log.Debugf("no config options: %v", err)
		extras = map[string]string{}
	}

	for _, o := range cmd.StringSlice("option") {
		if err := OptionValidator(o); err != nil {
			return nil, err
		}
		k, v, _ := strings.Cut(o, "=")
		extras[k] = v
	}

	return extras, nil
}

// OpenStore opens the memo cache when it is enabled both by the --cache flag
// and the environment. Failing to open it only disables caching.
func OpenStore(cmd *cli.Command) *cache.Store {
	if !cmd.Bool("cache") {
		log.Debug("cache disabled by flag")
		return nil
	}

	base, ok, err := cacheutil.EnsureBaseDir()
	if err != nil {
		log.WithError(err).Warn("cache unavailable")
		return nil
	}
	if !ok {
		log.Debug("cache disabled")
		return nil
	}

	store, err := cache.Open(base)
	if err != nil {
		log.WithError(err).Warn("cache unavailable")
		return nil
	}

	conf := commandConfig(cmd, "cache")
	if hours, _ := conf.GetInt("cache.clean", 0); hours > 0 {
		if _, err := store.Purge(hoursToDuration(hours)); err != nil {
			log.WithError(err).Warn("cache cleaning failed")
		}
	}

	return store
}
