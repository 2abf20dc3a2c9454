// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/curl2py/internal/cache"
	"github.com/staranto/curl2py/internal/cacheutil"
	"github.com/staranto/curl2py/internal/meta"
)

func hoursToDuration(hours int) time.Duration {
	return time.Duration(hours) * time.Hour
}

// cacheDir resolves the cache directory or explains why there is none.
func cacheDir() (string, error) {
	if !cacheutil.Enabled() {
		return "", errors.New("cache is disabled by CURL2PY_CACHE")
	}
	dir, ok := cacheutil.Dir()
	if !ok {
		return "", errors.New("cannot resolve a cache directory")
	}
	return dir, nil
}

// CachePurgeAction removes expired entries and, with --hours, entries older
// than that many hours.
func CachePurgeAction(ctx context.Context, cmd *cli.Command) error {
	hours := int(cmd.Int("hours"))
	if err := NonNegativeValidator(hours); err != nil {
		return fmt.Errorf("--hours %w", err)
	}

	dir, err := cacheDir()
	if err != nil {
		return err
	}

	store, err := cache.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Purge(hoursToDuration(hours))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "removed %d cache %s\n", n, plural(n, "entry", "entries"))
	return nil
}

// CacheDirAction prints the cache directory.
func CacheDirAction(ctx context.Context, cmd *cli.Command) error {
	dir, err := cacheDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, dir)
	return nil
}

// CacheInfoAction summarizes the cache database.
func CacheInfoAction(ctx context.Context, cmd *cli.Command) error {
	dir, err := cacheDir()
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fi, err := os.Stat(filepath.Join(dir, cache.FileName))
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "%s: empty\n", dir)
		return nil
	} else if err != nil {
		return err
	}

	store, err := cache.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Len()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "path:     %s\n", store.Path())
	fmt.Fprintf(w, "entries:  %d\n", n)
	fmt.Fprintf(w, "size:     %s\n", humanize.Bytes(uint64(fi.Size()))) //nolint:gosec
	fmt.Fprintf(w, "modified: %s\n", humanize.Time(fi.ModTime()))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// CacheCommandBuilder constructs the "cache" command and its subcommands.
func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "inspect and clean the generated code cache",
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "purge",
				Usage:     "remove expired and old cache entries",
				UsageText: `curl2py cache purge [--hours N]`,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "hours",
						Usage: "also remove entries stored more than N hours ago",
						Sources: cli.NewValueSourceChain(
							yaml.YAML("cache.clean", altsrc.StringSourcer(cfg.Source)),
						),
						Value: 0,
					},
				},
				Action: CachePurgeAction,
			},
			{
				Name:   "dir",
				Usage:  "print the cache directory",
				Action: CacheDirAction,
			},
			{
				Name:   "info",
				Usage:  "summarize the cache database",
				Action: CacheInfoAction,
			},
		},
	}
}
