// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/curl2py/internal/cache"
	"github.com/staranto/curl2py/internal/config"
	"github.com/staranto/curl2py/internal/convert"
	"github.com/staranto/curl2py/internal/meta"
	"github.com/staranto/curl2py/internal/output"
)

// ConvertCommandAction is the action handler for the "convert" subcommand.
// Generated code goes through the memoizing converter; every other output
// format is emitted from the parsed request context.
func ConvertCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	// The output emitters read the package config.
	config.Config = commandConfig(cmd, "convert")

	command, err := ReadCommand(cmd)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	format := cmd.String("output")

	if format != "code" {
		req, err := convert.ParseContext(command)
		if err != nil {
			return err
		}
		return output.Spit(w, req, output.Options{
			Format: format,
			Color:  cmd.Bool("color"),
			Titles: cmd.Bool("titles"),
		})
	}

	extras, err := ParseOptions(cmd)
	if err != nil {
		return err
	}

	store := OpenStore(cmd)
	if store != nil {
		defer store.Close()
	}

	conf := commandConfig(cmd, "convert")
	ttl, err := conf.GetDuration("cache.ttl", cache.DefaultTTL)
	if err != nil {
		log.WithError(err).Warn("invalid cache.ttl, using default")
		ttl = cache.DefaultTTL
	}

	code, err := convert.NewConverter(store, ttl).Convert(command, extras, store != nil)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, code)
	return err
}

// ConvertCommandBuilder constructs the cli.Command for "convert", wiring
// metadata, flags, and the action handler.
func ConvertCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "translate a curl command into a Python requests call",
		UsageText: `curl2py convert [options] [--] [COMMAND...]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewOutputFlag("convert"),
			NewCacheFlag("convert"),
			NewTitlesFlag("convert"),
			&cli.StringSliceFlag{
				Name:    "option",
				Aliases: []string{"O"},
				Usage:   "extra keyword clause as key=value, repeatable",
				Validator: func(values []string) error {
					for _, v := range values {
						if err := OptionValidator(v); err != nil {
							return err
						}
					}
					return nil
				},
			},
		}, NewGlobalFlags("convert")...),
		Action: ConvertCommandAction,
	}
}
