// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import "github.com/danos/yang-compiler/schema"

// lookupLocal implements RFC 7950 lexical scoping for typedef/grouping:
// visible at the defining level and every ancestor level up to (and
// including) the module -- expressed as a direct walk over the arena
// rather than a side-table built during parsing.
func lookupLocal(t *schema.Tree, from schema.NodeID, kind schema.Kind, name string) schema.NodeID {
	for cur := from; cur != schema.NilNode; {
		n := t.Node(cur)
		if n == nil {
			return schema.NilNode
		}
		for _, c := range t.Children(cur) {
			cn := t.Node(c)
			if cn.Kind == kind && cn.Name == name {
				return c
			}
		}
		cur = n.Parent
	}
	return schema.NilNode
}

// lookupTop finds a direct top-level child of kind named name under
// module moduleID -- the only visibility cross-module references get
// (RFC 7950: an imported typedef/grouping/identity/feature must be
// declared at module scope, not nested).
func lookupTop(t *schema.Tree, moduleID schema.NodeID, kind schema.Kind, name string) schema.NodeID {
	for _, c := range t.Children(moduleID) {
		cn := t.Node(c)
		if cn.Kind == kind && cn.Name == name {
			return c
		}
	}
	return schema.NilNode
}

// lookupSymbol resolves a (possibly prefixed) reference to a typedef,
// grouping, identity or feature from the point of view of node `from`,
// which lives under module `fromModule`.
func (l *linker) lookupSymbol(from, fromModule schema.NodeID, kind schema.Kind, prefix, name string) (schema.NodeID, bool) {
	if prefix == "" || prefix == l.tree.Node(fromModule).Module.Prefix {
		if id := lookupLocal(l.tree, from, kind, name); id != schema.NilNode {
			return id, true
		}
		return schema.NilNode, false
	}
	target, ok := l.resolvePrefix(fromModule, prefix)
	if !ok {
		return schema.NilNode, false
	}
	if id := lookupTop(l.tree, target, kind, name); id != schema.NilNode {
		return id, true
	}
	return schema.NilNode, false
}
