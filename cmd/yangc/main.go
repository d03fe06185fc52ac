// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Command yangc compiles a set of YANG modules: it parses each file,
// links and resolves the combined schema tree, and builds a serializer
// context over the result. A resolution failure is printed as
// file:line:col: message and the command exits non-zero.
package main

import (
	"fmt"
	"os"

	"github.com/danos/yang-compiler/ast"
	"github.com/danos/yang-compiler/resolve"
	"github.com/danos/yang-compiler/serializer"
	"github.com/danos/yang-compiler/yangerr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var searchDirs []string
	var strict bool
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "yangc [flags] <module.yang>...",
		Short: "Compile a set of YANG modules into a resolved schema tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, searchDirs, strict, verbosity)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringArrayVarP(&searchDirs, "path", "I", nil,
		"directory to search for imported/included modules (repeatable)")
	rootCmd.Flags().BoolVar(&strict, "strict-revisions", false,
		"require an explicit revision on every import")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v",
		"increase log verbosity (-v info, -vv debug)")

	if err := rootCmd.Execute(); err != nil {
		printCompileError(err)
		os.Exit(1)
	}
}

func run(files, searchDirs []string, strict bool, verbosity int) error {
	log := logrus.New()
	switch {
	case verbosity >= 2:
		log.SetLevel(logrus.DebugLevel)
	case verbosity == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	var roots []*ast.Statement
	for _, f := range files {
		root, err := ast.ParseFile(f)
		if err != nil {
			return err
		}
		roots = append(roots, root)
	}

	policy := resolve.PolicyLatest
	if strict {
		policy = resolve.PolicyStrict
	}
	cfg := resolve.Config{
		SearchDirs:     searchDirs,
		RevisionPolicy: policy,
		Logger:         log,
	}

	tree, err := resolve.ResolveSet(roots, cfg)
	if err != nil {
		return err
	}

	ctx := serializer.NewContext(tree, nil)
	_ = ctx

	fmt.Fprintf(os.Stdout, "compiled %d module(s)\n", len(tree.Roots))
	return nil
}

// printCompileError renders a *yangerr.Error in file:line:col: message
// form; any other error (flag parsing, file I/O) is printed after a
// "yangc: " prefix.
func printCompileError(err error) {
	if ye, ok := err.(*yangerr.Error); ok {
		fmt.Fprintf(os.Stderr, "%s\n", ye.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "yangc: %s\n", err.Error())
}
