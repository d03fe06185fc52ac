// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import "github.com/danos/yang-compiler/schema"

// finalizeNamespaces is phase 7: assign namespace to every node and
// rebuild every holder's ChildIndex from the final sibling chain.
//
// An ordinarily-declared node (a plain container/leaf/list straight out
// of the listener) carries Namespace == "" -- only a module/submodule
// node, a uses-expansion clone and a spliced augment child have it set
// before this phase runs. This phase propagates the nearest enclosing
// module's namespace down to every node that still has none, following
// the invariant that a node's namespace is that of the module that
// defines it: the using module for a uses expansion (already stamped by
// Clone) and the augmenting module for an augment's children (already
// stamped by spliceAugmentChildren) take precedence over the structural
// parent's namespace.
//
// uses expansion, augment application and deviation application each
// mutate a holder's children after its ChildIndex was first populated --
// deviate not-supported removes a node from the sibling chain without
// retracting its stale ChildIndex entry, and a clone or splice can leave
// an index entry pointing at a node that's since moved. Rebuilding every
// holder's ChildIndex from the final sibling chain both discards the
// stale entries and re-runs collision detection across whatever the
// prior phases spliced in.
func (l *linker) finalizeNamespaces() error {
	for _, r := range l.tree.Roots {
		if err := l.rebuildChildIndex(r, ""); err != nil {
			return err
		}
	}
	return nil
}

// rebuildChildIndex assigns holder's namespace from ns when holder has
// none of its own, then rebuilds holder's ChildIndex, indexing each
// child under its own (now-resolved) namespace and recursing with that
// namespace as the next level's default.
func (l *linker) rebuildChildIndex(holder schema.NodeID, ns string) error {
	n := l.tree.Node(holder)
	if n == nil {
		return nil
	}
	if n.Namespace == "" {
		n.Namespace = ns
	}
	n.ChildIndex = nil
	n.DefaultChild = schema.NilNode

	for _, c := range l.tree.Children(holder) {
		cn := l.tree.Node(c)
		if cn.Namespace == "" {
			cn.Namespace = n.Namespace
		}
		if cn.Kind.IsDataOrCaseNode() {
			if err := l.tree.IndexChild(holder, c, cn.Name, cn.Namespace); err != nil {
				return err
			}
		}
		if err := l.rebuildChildIndex(c, cn.Namespace); err != nil {
			return err
		}
	}

	if n.Kind == schema.KindChoice && n.Choice.DefaultCase != "" {
		if id := l.tree.DetectCollidingChild(holder, n.Choice.DefaultCase, n.Namespace); id != schema.NilNode {
			n.DefaultChild = id
		}
	}
	return nil
}
