// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/profcache/internal/command"
	"github.com/tfctl/profcache/internal/config"
	"github.com/tfctl/profcache/internal/log"
	"github.com/tfctl/profcache/internal/version"
)

var ctx = context.Background()

// boolFlags never take a value, so the argument after them is positional.
var boolFlags = map[string]bool{
	"--color": true, "-c": true,
	"--titles": true, "-t": true,
	"--raw": true, "--keys": true, "-k": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @set references and drops all but the last
// occurrence of a repeated flag.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}
	args = processSetOnly(args, configSet)
	log.Debugf("args after set processing: args=%v", args)
	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// configSet returns the argument set stored at "<command>.<set>" in the
// config file.
func configSet(command, set string) []string {
	entries, _ := config.GetStringSlice(command + "." + set)
	return entries
}

// processSetOnly replaces the first @set argument after the command with the
// arguments lookup returns for it. Each entry is split on whitespace.
func processSetOnly(args []string, lookup func(command, set string) []string) []string {
	if len(args) < 3 {
		return args
	}

	idx := -1
	for i, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			idx = i + 2
			break
		}
	}
	if idx == -1 {
		return args
	}

	var expanded []string
	for _, entry := range lookup(args[1], args[idx][1:]) {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := append([]string{}, args[:idx]...)
	out = append(out, expanded...)
	return append(out, args[idx+1:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag after the
// command, so explicit arguments override those expanded from a set. A flag
// without "=" takes the following argument as its value unless that starts
// with "-" or the flag is boolean.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name  string
		parts []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" || a == "--" {
			groups = append(groups, group{parts: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		g := group{name: name, parts: []string{a}}
		if !hasValue && !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			g.parts = append(g.parts, args[i])
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name != "" && last[g.name] != i {
			continue
		}
		out = append(out, g.parts...)
	}
	return out
}
