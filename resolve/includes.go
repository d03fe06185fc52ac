// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/danos/utils/tsort"
	"github.com/danos/yang-compiler/schema"
	"github.com/danos/yang-compiler/yangerr"
)

// includeSubmodules is phase 1: for each module, recursively load its
// `include`d submodules, verify the include graph is acyclic (building a
// tsort.Graph purely to detect cycles and discarding the order), and
// merge each submodule's top-level schema nodes into the owning module's
// scope. Prefix bindings for names introduced by a submodule are taken
// from the including module.
func (l *linker) includeSubmodules() error {
	for _, rootID := range append([]schema.NodeID(nil), l.tree.Roots...) {
		mod := l.tree.Node(rootID)
		if mod == nil || mod.Kind != schema.KindModule {
			continue
		}

		if err := l.verifyIncludeGraph(rootID); err != nil {
			return err
		}
		if err := l.mergeIncludes(rootID); err != nil {
			return err
		}
	}
	return nil
}

func (l *linker) verifyIncludeGraph(moduleID schema.NodeID) error {
	g := tsort.New()
	visited := map[schema.NodeID]bool{moduleID: true}
	queue := []schema.NodeID{moduleID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n := l.tree.Node(cur)
		if n.Module == nil {
			continue
		}
		for _, inc := range n.Module.Includes {
			g.AddEdge(n.Name, inc.SubmoduleName)
			sub := l.tree.SubmoduleByName(inc.SubmoduleName)
			if sub == schema.NilNode {
				if loaded, err := l.loadSubmodule(inc.SubmoduleName, inc.Revision); err == nil {
					sub = loaded
				}
			}
			if sub != schema.NilNode && !visited[sub] {
				visited[sub] = true
				queue = append(queue, sub)
			}
		}
	}
	if _, err := g.Sort(); err != nil {
		return yangerr.NewReference(yangerr.CyclicReference, l.tree.Node(moduleID).Pos, nil,
			"cyclic include graph rooted at %q: %s", l.tree.Node(moduleID).Name, err)
	}
	return nil
}

func (l *linker) loadSubmodule(name, revision string) (schema.NodeID, error) {
	return l.loadModuleFile(name, revision)
}

// mergeIncludes splices every included submodule's immediate children
// into the owning module node, resolving the include list transitively.
func (l *linker) mergeIncludes(moduleID schema.NodeID) error {
	mod := l.tree.Node(moduleID)
	seen := make(map[string]bool)
	var walk func(owner schema.NodeID) error
	walk = func(owner schema.NodeID) error {
		on := l.tree.Node(owner)
		if on.Module == nil {
			return nil
		}
		for _, inc := range on.Module.Includes {
			if seen[inc.SubmoduleName] {
				continue
			}
			seen[inc.SubmoduleName] = true

			subID := l.tree.SubmoduleByName(inc.SubmoduleName)
			if subID == schema.NilNode {
				loaded, err := l.loadSubmodule(inc.SubmoduleName, inc.Revision)
				if err != nil {
					if l.cfg.SkipUnknown {
						l.log.Warnf("submodule %q not found, skipping (SkipUnknown)", inc.SubmoduleName)
						continue
					}
					return yangerr.NewReference(yangerr.MissingImport, on.Pos, nil,
						"submodule %q: %s", inc.SubmoduleName, err)
				}
				subID = loaded
			}
			sub := l.tree.Node(subID)
			if sub.Module.BelongsTo != mod.Name {
				return yangerr.NewConstraint(yangerr.IllegalAugmentTarget, sub.Pos, nil,
					"submodule %q belongs to %q, not %q", sub.Name, sub.Module.BelongsTo, mod.Name)
			}

			for _, c := range l.tree.Children(subID) {
				l.tree.RemoveChild(c)
				l.tree.AppendChild(moduleID, c)
				cn := l.tree.Node(c)
				if cn.Kind.IsDataOrCaseNode() {
					if err := l.tree.IndexChild(moduleID, c, cn.Name, cn.Namespace); err != nil {
						return err
					}
				}
			}
			if err := walk(subID); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(moduleID)
}
