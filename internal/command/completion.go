// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/meta"
)

const bashCompletionScript = `# bash completion for profcache
_profcache()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get getint set del sections section setsection getstruct setstruct dump stat boot completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--user-dir -u --system-dir -d --boot -b --slots --color -c --output -o --padding --sort -s --titles -t"

    case "$cmd" in
        get)        local opts="$common --default --raw" ;;
        getint)     local opts="$common --default" ;;
        getstruct)  local opts="$common --size" ;;
        section)    local opts="$common --keys -k" ;;
        dump)       local opts="$common --query -q" ;;
        boot)       local opts="--boot -b --color -c --output -o --sort -s --titles -t" ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)          local opts="$common" ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        if [[ "$cmd" == "dump" ]]; then
            COMPREPLY=( $(compgen -W "ini json yaml" -- "$cur") )
        else
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        fi
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi
    COMPREPLY=( $(compgen -f -- "$cur") )
}
complete -F _profcache profcache
`

const zshCompletionScript = `#compdef profcache
_profcache() {
  local -a commands common
  commands=(
    'get:read a value'
    'getint:read a value as an integer'
    'set:write a value'
    'del:delete a key or a section'
    'sections:list the sections of a profile'
    'section:list the entries of a section'
    'setsection:write several key=value pairs into a section'
    'getstruct:read a checksummed binary record'
    'setstruct:write a binary record given as hex'
    'dump:print a profile as ini, json or yaml'
    'stat:show how the cache holds profiles'
    'boot:load the boot file'
    'completion:generate shell completion script'
  )
  common=(
    '(-u --user-dir)'{-u,--user-dir}'[user directory]:dir:_directories'
    '(-d --system-dir)'{-d,--system-dir}'[system directory]:dir:_directories'
    '(-b --boot)'{-b,--boot}'[boot file]:file:_files'
    '--slots[cache slots]:slots'
    '(-c --color)'{-c,--color}'[colored output]'
    '(-t --titles)'{-t,--titles}'[show titles]'
    '(-s --sort)'{-s,--sort}'[sort columns]:sort'
  )

  if (( CURRENT == 2 )); then
    _describe 'command' commands
    return
  fi

  case "$words[2]" in
    dump)
      _arguments $common '(-o --output)'{-o,--output}'[format]:format:(ini json yaml)' '(-q --query)'{-q,--query}'[gjson path]:path' '*:file:_files'
      ;;
    completion)
      _arguments '2: :((bash zsh))'
      ;;
    *)
      _arguments $common '(-o --output)'{-o,--output}'[format]:format:(text json yaml)' '*:file:_files'
      ;;
  esac
}

compdef _profcache profcache
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(Stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(Stdout(cmd), zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: profcache completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "profcache completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
