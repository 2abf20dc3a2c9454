// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/curl2py/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var cfg config.Type

// NewGlobalFlags returns the presentation flags shared by convert and diff.
// params[0] is the command name and config namespace.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored output on a terminal",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewOutputFlag constructs the --output flag, namespaced to a command in the
// config file.
func NewOutputFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (code, json, yaml, text, hcl)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CURL2PY_OUTPUT"),
			yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
		),
		Value: "code",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, OutputValidator)
		},
	}
}

// NewCacheFlag constructs --cache/--no-cache.
func NewCacheFlag(ns string) *cli.BoolWithInverseFlag {
	return &cli.BoolWithInverseFlag{
		Name:  "cache",
		Usage: "reuse previously generated code",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"cache", altsrc.StringSourcer(cfg.Source)),
		),
		Value: true,
	}
}

// NewTitlesFlag constructs --titles/--no-titles for text output.
func NewTitlesFlag(ns string) *cli.BoolWithInverseFlag {
	return &cli.BoolWithInverseFlag{
		Name:    "titles",
		Aliases: []string{"t"},
		Usage:   "show titles with text output",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
		),
		Value: false,
	}
}
