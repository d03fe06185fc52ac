// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"fmt"

	"github.com/danos/yang-compiler/ast"
	"github.com/danos/yang-compiler/schema"
	"github.com/danos/yang-compiler/yangerr"
	"github.com/sirupsen/logrus"
)

// linker carries the mutable state threaded through all resolution
// phases. It is the arena's sole mutator during resolution: the resolver
// mutates the shared schema tree with no synchronization.
type linker struct {
	tree *schema.Tree
	cfg  Config
	log  *logrus.Logger

	// moduleOrder is the reverse-topological processing order established
	// by phase 3; every later phase iterates modules in this order.
	moduleOrder []string

	// loadedFiles prevents loading the same on-disk file twice when two
	// modules import the same dependency.
	loadedFiles map[string]bool
}

// ResolveSet is the public entry point: it lowers each root into a shared
// arena and runs the ordered resolution phases, in order, never exposing
// a partially-resolved tree on failure.
func ResolveSet(roots []*ast.Statement, cfg Config) (tree *schema.Tree, err error) {
	l := &linker{
		tree:        schema.NewTree(),
		cfg:         cfg,
		log:         cfg.logger(),
		loadedFiles: make(map[string]bool),
	}

	defer l.recoverTo(&err)

	for _, r := range roots {
		id, ferr := schema.BuildInto(l.tree, r)
		if ferr != nil {
			return nil, ferr
		}
		l.tree.Roots = append(l.tree.Roots, id)
	}
	if len(l.tree.Roots) > 0 {
		l.tree.Root = l.tree.Roots[0]
	}

	l.phase("submodule inclusion", l.includeSubmodules)
	l.phase("import resolution", l.resolveImports)
	l.phase("dependency ordering", l.orderModules)
	l.phase("typedef/identity/feature resolution", l.resolveDefinitions)
	l.phase("uses expansion", l.expandUses)
	l.phase("augment application", l.applyAugments)
	l.phase("deviation application", l.applyDeviations)
	l.phase("namespace and collision finalization", l.finalizeNamespaces)
	l.phase("leafref/instance-identifier validation", l.validatePaths)

	return l.tree, nil
}

// phase logs entry/exit at Debug and lets a panicked *yangerr.Error unwind
// to ResolveSet's deferred recoverTo, a recover-at-top-of-phase pattern so
// resolution code doesn't thread error through every call.
func (l *linker) phase(name string, fn func() error) {
	l.log.Debugf("resolve: entering phase %q", name)
	if err := fn(); err != nil {
		panic(err)
	}
	l.log.Debugf("resolve: completed phase %q", name)
}

func (l *linker) recoverTo(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*errp = e
		return
	}
	panic(r)
}

// fail builds an InternalError from a format string, for phases that
// prefer to return rather than panic directly.
func fail(pos yangerr.Position, format string, args ...interface{}) error {
	return yangerr.NewInternal(pos, format, args...)
}

// resolvePrefix maps a (possibly empty) prefix used inside moduleID to the
// NodeID of the module it denotes: moduleID itself for "" or its own
// prefix, or the imported module bound to that prefix.
func (l *linker) resolvePrefix(moduleID schema.NodeID, prefix string) (schema.NodeID, bool) {
	m := l.tree.Node(moduleID)
	if m == nil || m.Module == nil {
		return schema.NilNode, false
	}
	if prefix == "" || prefix == m.Module.Prefix {
		return moduleID, true
	}
	for _, imp := range m.Module.Imports {
		if imp.Prefix == prefix {
			return imp.Target, imp.Target != schema.NilNode
		}
	}
	return schema.NilNode, false
}

func qname(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return fmt.Sprintf("%s:%s", prefix, name)
}
