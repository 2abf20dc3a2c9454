// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/curl2py/internal/config"
	"github.com/staranto/curl2py/internal/convert"
	"github.com/staranto/curl2py/internal/meta"
	"github.com/staranto/curl2py/internal/output"
)

// DiffCommandAction parses two curl commands and prints a structural diff of
// the resulting request contexts.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	log.Debugf("Executing action for %v", args)

	config.Config = commandConfig(cmd, "diff")

	if len(args) != 2 { //nolint:mnd
		return errors.New("diff requires exactly two curl commands")
	}

	left, err := convert.ParseContext(args[0])
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	right, err := convert.ParseContext(args[1])
	if err != nil {
		return fmt.Errorf("right: %w", err)
	}

	w := cmd.Root().Writer
	changed, err := output.Diff(w, left, right, cmd.Bool("color"))
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(w, "no differences")
	}
	return nil
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare the requests described by two curl commands",
		UsageText: `curl2py diff [options] CMD_A CMD_B`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewGlobalFlags("diff"),
		Action: DiffCommandAction,
	}
}
