// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package resolve is the linker/resolver: the core of the compiler. It
// takes a set of parsed (module, submodule) roots and the search
// directories needed to load imports on demand, and runs the ordered
// phases to produce a fully resolved schema.Tree or report a definite
// error.
package resolve

import (
	"github.com/danos/yang-compiler/modfile"
	"github.com/sirupsen/logrus"
)

// RevisionPolicy controls how an import without an explicit revision-date
// is bound: revision-selection policy (strict/latest).
type RevisionPolicy int

const (
	// PolicyLatest binds an unqualified import to the newest revision
	// found on the search path. This is the default and matches RFC
	// 7950's own guidance.
	PolicyLatest RevisionPolicy = iota
	// PolicyStrict requires every import to name an explicit revision-date.
	PolicyStrict
)

// Config is passed explicitly to ResolveSet; no package-level globals
// gate compilation semantics.
type Config struct {
	// SearchDirs lists directories to search, left-to-right, for modules
	// named by import/include but not present in the initial root set.
	SearchDirs []string

	RevisionPolicy RevisionPolicy

	// SkipUnknown accepts an unresolved import/include by logging and
	// continuing rather than failing the compile (used by tooling that
	// only wants a best-effort partial tree, e.g. an editor's live-lint
	// pass).
	SkipUnknown bool

	// Logger receives phase-boundary and fixed-point progress messages.
	// A nil Logger gets a default one at Warn level.
	Logger *logrus.Logger
}

func (c *Config) logger() *logrus.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

func (c *Config) locator() *modfile.Locator {
	return modfile.NewLocator(c.SearchDirs...)
}
