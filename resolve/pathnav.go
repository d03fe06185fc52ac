// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import "github.com/danos/yang-compiler/schema"

// resolveRelativePath walks path (a descendant schema-node-id path with no
// prefixes, as used by `refine` and an inline `augment` inside `uses`)
// starting from the given sibling roots, matching on Name only -- refine
// and inline-augment targets are always within the just-expanded clone,
// which shares the using module's namespace, so name alone disambiguates.
func resolveRelativePath(t *schema.Tree, roots []schema.NodeID, path []string) (schema.NodeID, bool) {
	if len(path) == 0 {
		return schema.NilNode, false
	}
	cur := findByName(t, roots, path[0])
	if cur == schema.NilNode {
		return schema.NilNode, false
	}
	for _, seg := range path[1:] {
		next := findByName(t, t.Children(cur), seg)
		if next == schema.NilNode {
			return schema.NilNode, false
		}
		cur = next
	}
	return cur, true
}

func findByName(t *schema.Tree, ids []schema.NodeID, name string) schema.NodeID {
	for _, id := range ids {
		n := t.Node(id)
		if n.Name == name {
			return id
		}
		if n.Kind == schema.KindChoice {
			for _, cs := range t.Children(id) {
				if found := findByName(t, t.Children(cs), name); found != schema.NilNode {
					return found
				}
			}
		}
	}
	return schema.NilNode
}

// resolveAbsoluteOrDescendantPath resolves an augment target path:
// absolute paths (leading "/") start at the owning module's data tree
// among all compiled modules; descendant paths start at the augment's
// own enclosing module.
func (l *linker) resolveAbsoluteOrDescendantPath(fromModule schema.NodeID, absolute bool, path []string) (schema.NodeID, bool) {
	if len(path) == 0 {
		return schema.NilNode, false
	}
	prefix, name := splitQName(path[0])
	var startModule schema.NodeID
	if absolute {
		m, ok := l.resolvePrefix(fromModule, prefix)
		if !ok {
			return schema.NilNode, false
		}
		startModule = m
	} else {
		startModule = fromModule
	}

	cur := findByName(l.tree, l.tree.Children(startModule), name)
	if cur == schema.NilNode {
		return schema.NilNode, false
	}
	for _, seg := range path[1:] {
		_, segName := splitQName(seg)
		next := findByName(l.tree, l.tree.Children(cur), segName)
		if next == schema.NilNode {
			return schema.NilNode, false
		}
		cur = next
	}
	return cur, true
}

func splitQName(s string) (prefix, name string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:]
		}
	}
	return "", s
}
