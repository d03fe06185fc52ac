// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/danos/utils/tsort"
	"github.com/danos/yang-compiler/ast"
	"github.com/danos/yang-compiler/schema"
	"github.com/danos/yang-compiler/yangerr"
)

// loadModuleFile finds name[@revision].yang on the search path, parses it
// and lowers it into the shared arena, registering it as a new root. It is
// shared by phase 1 (submodule loading) and phase 2 (import loading).
func (l *linker) loadModuleFile(name, revision string) (schema.NodeID, error) {
	loc := l.cfg.locator()
	path, err := loc.Find(name, revision)
	if err != nil {
		return schema.NilNode, err
	}
	if l.loadedFiles[path] {
		// Already parsed via a different import/include edge; find it.
		if id := l.tree.ModuleByName(name); id != schema.NilNode {
			return id, nil
		}
		if id := l.tree.SubmoduleByName(name); id != schema.NilNode {
			return id, nil
		}
	}
	l.loadedFiles[path] = true

	stmt, err := ast.ParseFile(path)
	if err != nil {
		return schema.NilNode, err
	}
	id, err := schema.BuildInto(l.tree, stmt)
	if err != nil {
		return schema.NilNode, err
	}
	l.tree.Roots = append(l.tree.Roots, id)
	return id, nil
}

// resolveImports is phase 2: for each `import`, locate (loading on
// demand) the target module and bind the local prefix to its namespace.
// Cyclic imports are caught by phase 3's tsort.Sort.
func (l *linker) resolveImports() error {
	for i := 0; i < len(l.tree.Roots); i++ {
		rootID := l.tree.Roots[i]
		mod := l.tree.Node(rootID)
		if mod.Module == nil {
			continue
		}
		for idx := range mod.Module.Imports {
			imp := &mod.Module.Imports[idx]
			if imp.Revision == "" && l.cfg.RevisionPolicy == PolicyStrict {
				return yangerr.NewReference(yangerr.MissingImport, imp.Pos, nil,
					"import %q has no revision-date under strict revision policy", imp.ModuleName)
			}
			target := l.tree.ModuleByName(imp.ModuleName)
			if target == schema.NilNode {
				revision := imp.Revision
				loaded, err := l.loadModuleFile(imp.ModuleName, revision)
				if err != nil {
					if l.cfg.SkipUnknown {
						l.log.Warnf("import %q not found, skipping (SkipUnknown)", imp.ModuleName)
						continue
					}
					return yangerr.NewReference(yangerr.MissingImport, imp.Pos, nil,
						"import %q: %s", imp.ModuleName, err)
				}
				target = loaded
			}
			imp.Target = target
			imp.Status = schema.Linked
		}
	}
	return nil
}

// orderModules is phase 3: build a directed graph from importer to
// imported module and process modules in reverse topological order.
func (l *linker) orderModules() error {
	g := tsort.New()
	for _, rootID := range l.tree.Roots {
		mod := l.tree.Node(rootID)
		if mod.Kind != schema.KindModule || mod.Module == nil {
			continue
		}
		g.AddVertex(mod.Name)
		for _, imp := range mod.Module.Imports {
			g.AddEdge(mod.Name, imp.ModuleName)
		}
	}
	order, err := g.Sort()
	if err != nil {
		return yangerr.NewReference(yangerr.CyclicReference, nil, nil, "import graph: %s", err)
	}

	// tsort.Sort yields a topological order (dependencies after
	// dependents is the common convention this codebase follows, see the
	// teacher's ExpandModules); reverse it so imported modules are
	// processed before their importers.
	l.moduleOrder = make([]string, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		if l.tree.ModuleByName(order[i]) != schema.NilNode {
			l.moduleOrder = append(l.moduleOrder, order[i])
		}
	}
	return nil
}
