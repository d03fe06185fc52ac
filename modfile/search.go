// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package modfile implements module search: locating "<name>.yang" or
// "<name>@<revision>.yang" across a configured, left-to-right ordered
// list of search directories. Candidate ordering within a directory uses
// github.com/danos/utils/natsort so that revisioned filenames of a
// module sort newest-last regardless of directory listing order.
package modfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/danos/utils/natsort"
)

var revisionedName = regexp.MustCompile(`^(.+)@(\d{4}-\d{2}-\d{2})\.yang$`)

// Locator resolves module/submodule names to file paths across a list of
// search directories, searched left-to-right with first-match-wins.
type Locator struct {
	Dirs []string
}

// NewLocator builds a Locator over dirs in priority order.
func NewLocator(dirs ...string) *Locator {
	return &Locator{Dirs: dirs}
}

// Candidate is one on-disk file that could satisfy a module name.
type Candidate struct {
	Path     string
	Name     string
	Revision string // empty if the filename carries no revision
}

// Find locates the file implementing module name, honoring an optional
// requested revision. With no requested revision, the newest available
// revision is selected. Directories are searched in Locator.Dirs order;
// the first directory that contains any candidate for name wins
// outright -- it is never mixed with candidates from a later directory
// (first match wins, left-to-right).
func (l *Locator) Find(name, revision string) (string, error) {
	for _, dir := range l.Dirs {
		cands, err := l.candidatesIn(dir, name)
		if err != nil {
			continue
		}
		if len(cands) == 0 {
			continue
		}
		if revision == "" {
			return newest(cands).Path, nil
		}
		for _, c := range cands {
			if c.Revision == revision {
				return c.Path, nil
			}
		}
		return "", fmt.Errorf("module %q revision %q not found in %s", name, revision, dir)
	}
	return "", fmt.Errorf("module %q not found in search path", name)
}

func (l *Locator) candidatesIn(dir, name string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	byName := make(map[string]Candidate)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fname := e.Name()
		if fname == name+".yang" {
			c := Candidate{Path: filepath.Join(dir, fname), Name: name}
			names = append(names, fname)
			byName[fname] = c
			continue
		}
		if m := revisionedName.FindStringSubmatch(fname); m != nil && m[1] == name {
			c := Candidate{Path: filepath.Join(dir, fname), Name: name, Revision: m[2]}
			names = append(names, fname)
			byName[fname] = c
		}
	}
	natsort.Sort(names)
	out := make([]Candidate, 0, len(names))
	for _, n := range names {
		out = append(out, byName[n])
	}
	return out, nil
}

// newest returns the candidate with the greatest revision; a bare
// "<name>.yang" candidate with no revision is treated as older than any
// revisioned candidate, since YANG has no way to express its recency.
func newest(cands []Candidate) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Revision == "" {
			continue
		}
		if best.Revision == "" || c.Revision > best.Revision {
			best = c
		}
	}
	return best
}

// SplitRevisionedName parses a "name@revision" import/include argument,
// used when a statement's argument itself carries a revision.
func SplitRevisionedName(s string) (name, revision string) {
	if i := strings.IndexByte(s, '@'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
