// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/curl2py/internal/meta"
)

const bashCompletionScript = `# bash completion for curl2py
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_curl2py()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "convert diff cache completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}

    case "$cmd" in
        convert)
            local opts="--output -o --option -O --cache --no-cache --color -c --titles -t"
            ;;
        diff)
            local opts="--color -c"
            ;;
        cache)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "purge dir info" -- "$cur") )
                return 0
            fi
            local opts="--hours"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "code json yaml text hcl" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi
    return 0
}

complete -F _curl2py curl2py
`

const zshCompletionScript = `#compdef curl2py

_curl2py() {
  local -a cmds
  cmds=(
    'convert:translate a curl command into a Python requests call'
    'diff:compare the requests described by two curl commands'
    'cache:inspect and clean the generated code cache'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'curl2py commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    convert)
      _arguments -C \
        '(-o --output)'{-o,--output}'[output format]:format:(code json yaml text hcl)' \
        '*'{-O,--option}'[extra keyword clause]:key=value' \
        '(--cache --no-cache)--cache[reuse generated code]' \
        '(--cache --no-cache)--no-cache[always regenerate]' \
        '(-c --color)'{-c,--color}'[enable colored output]' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '*:curl command'
      ;;
    diff)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored output]' \
        '1:first curl command' \
        '2:second curl command'
      ;;
    cache)
      _arguments '1: :((purge dir info))' '--hours[age in hours]:hours'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _curl2py curl2py
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: curl2py completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "curl2py completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
