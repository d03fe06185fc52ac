// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/danos/yang-compiler/schema"
	"github.com/danos/yang-compiler/yangerr"
)

// expandUses is phase 5. This runs a FIFO worklist rather than
// round-robin: cloning a grouping can introduce fresh `uses` nodes (a
// grouping that itself uses another grouping), and those are appended to
// the queue rather than requiring a full extra pass over the whole tree.
func (l *linker) expandUses() error {
	var queue []schema.NodeID
	for _, r := range l.tree.Roots {
		collectUsesDescendants(l.tree, r, &queue)
	}

	rounds := 0
	for len(queue) > 0 {
		rounds++
		id := queue[0]
		queue = queue[1:]

		n := l.tree.Node(id)
		if n == nil || n.Kind != schema.KindUses || n.Parent == schema.NilNode {
			// already spliced away via an ancestor's removal; skip.
			continue
		}

		moduleID := l.tree.NearestModule(id)
		target, ok := l.lookupSymbol(id, moduleID, schema.KindGrouping, n.Uses.GroupingPrefix, n.Uses.GroupingName)
		if !ok {
			return yangerr.NewReference(yangerr.UnresolvedReference, n.Pos, nil,
				"uses target grouping %q does not resolve", qname(n.Uses.GroupingPrefix, n.Uses.GroupingName))
		}
		for a := n.Parent; a != schema.NilNode; a = l.tree.Node(a).Parent {
			if a == target {
				return yangerr.NewReference(yangerr.CyclicReference, n.Pos, nil,
					"uses %q: grouping %q uses itself", qname(n.Uses.GroupingPrefix, n.Uses.GroupingName), l.tree.Node(target).Name)
			}
		}
		n.Uses.Target = target
		n.Uses.Status = schema.IntraFileResolved
		l.log.Debugf("resolve: uses %q -> grouping %q (round %d)", n.Name, l.tree.Node(target).Name, rounds)

		clonedRoots, err := l.spliceUsesExpansion(id, n, target, moduleID)
		if err != nil {
			return err
		}
		l.tree.Node(target).Grouping.Instantiated++

		for _, rf := range n.Uses.Refines {
			if err := applyRefine(l.tree, clonedRoots, rf); err != nil {
				return err
			}
		}
		for _, augID := range n.Uses.InlineAugments {
			if err := l.applyInlineAugment(augID, clonedRoots, moduleID); err != nil {
				return err
			}
		}

		for _, cr := range clonedRoots {
			collectUsesDescendants(l.tree, cr, &queue)
		}
	}
	return nil
}

// spliceUsesExpansion deep-clones target's children in place of uses node
// id, re-parenting to id's parent and re-namespacing to the using
// module's namespace, preserving sibling order, then removes the uses
// placeholder.
func (l *linker) spliceUsesExpansion(id schema.NodeID, n *schema.Node, target, moduleID schema.NodeID) ([]schema.NodeID, error) {
	parent := n.Parent
	ns := l.tree.Node(moduleID).Namespace

	var clonedRoots []schema.NodeID
	anchor := id
	for _, gc := range l.tree.Children(target) {
		clone := schema.Clone(l.tree, l.tree, gc, parent, ns)
		l.tree.InsertAfter(anchor, clone)
		anchor = clone
		clonedRoots = append(clonedRoots, clone)

		cn := l.tree.Node(clone)
		if cn.Kind.IsDataOrCaseNode() {
			if err := l.tree.IndexChild(parent, clone, cn.Name, ns); err != nil {
				return nil, err
			}
		}
	}
	l.tree.RemoveChild(id)
	return clonedRoots, nil
}

func collectUsesDescendants(t *schema.Tree, root schema.NodeID, queue *[]schema.NodeID) {
	n := t.Node(root)
	if n == nil {
		return
	}
	if n.Kind == schema.KindUses && n.Uses.Status == schema.Unresolved {
		*queue = append(*queue, root)
	}
	for _, c := range t.Children(root) {
		collectUsesDescendants(t, c, queue)
	}
}

// applyRefine applies one `refine` directive: look up the relative
// schema-path within the clone and mutate the addressed attributes.
func applyRefine(t *schema.Tree, roots []schema.NodeID, rf schema.RefineDirective) error {
	target, ok := resolveRelativePath(t, roots, rf.Path)
	if !ok {
		return yangerr.NewReference(yangerr.UnresolvedReference, rf.Pos, nil,
			"refine target %q does not resolve within the uses expansion", pathString(rf.Path))
	}
	n := t.Node(target)

	if rf.HasDesc {
		n.Description = rf.Description
	}
	if rf.HasRef {
		n.Reference = rf.Reference
	}
	n.Must = append(n.Must, rf.Must...)

	switch n.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		if rf.HasDefault {
			n.Leaf.Default, n.Leaf.HasDefault = rf.Default, true
		}
		if rf.HasConfig {
			n.Leaf.Config, n.Leaf.ConfigSet = rf.Config, true
		}
		if rf.HasMandat {
			n.Leaf.Mandatory = rf.Mandatory
		}
		if rf.HasMin {
			n.Leaf.MinElements = rf.MinElements
		}
		if rf.HasMax {
			n.Leaf.MaxElements = rf.MaxElements
		}
	case schema.KindList:
		if rf.HasConfig {
			n.List.Config, n.List.ConfigSet = rf.Config, true
		}
		if rf.HasMin {
			n.List.MinElements = rf.MinElements
		}
		if rf.HasMax {
			n.List.MaxElements = rf.MaxElements
		}
	case schema.KindChoice:
		if rf.HasDefault {
			n.Choice.DefaultCase = rf.Default
		}
	}
	return nil
}

// applyInlineAugment splices an augment declared inline inside a `uses`
// statement into the freshly-expanded clone.
func (l *linker) applyInlineAugment(augID schema.NodeID, roots []schema.NodeID, moduleID schema.NodeID) error {
	an := l.tree.Node(augID)
	target, ok := resolveRelativePath(l.tree, roots, an.Augment.TargetPath)
	if !ok {
		return yangerr.NewReference(yangerr.UnresolvedReference, an.Pos, nil,
			"inline augment target %q does not resolve within the uses expansion", pathString(an.Augment.TargetPath))
	}
	an.Augment.Target = target
	an.Augment.Status = schema.Resolved

	ns := l.tree.Node(moduleID).Namespace
	children := l.tree.Children(augID)
	if err := checkAugmentable(l.tree, target, children, an.Pos); err != nil {
		return err
	}
	return spliceAugmentChildren(l.tree, target, children, ns)
}
