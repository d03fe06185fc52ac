// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package schema

import "github.com/danos/yang-compiler/yangerr"

// Tree is the arena that owns every Node reachable from Root. Only Tree
// allocates and mutates nodes; every other reference into the tree is a
// NodeID, never a pointer.
type Tree struct {
	nodes []*Node
	Root  NodeID

	// Roots holds every top-level module/submodule NodeID the arena was
	// built from, in the order BuildInto was called (resolve.ResolveSet
	// populates this for a multi-module compilation unit). Root is a
	// convenience alias for Roots[0].
	Roots []NodeID
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{nodes: make([]*Node, 0, 64), Root: NilNode}
}

// Node dereferences id. It returns nil for NilNode or an out-of-range id.
func (t *Tree) Node(id NodeID) *Node {
	if id == NilNode || int(id) < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// New allocates a fresh node of the given kind and returns its id.
func (t *Tree) New(kind Kind) NodeID {
	id := NodeID(len(t.nodes))
	n := &Node{
		ID:          id,
		Kind:        kind,
		Parent:      NilNode,
		FirstChild:  NilNode,
		LastChild:   NilNode,
		NextSibling: NilNode,
		PrevSibling: NilNode,
		DefaultChild: NilNode,
	}
	t.nodes = append(t.nodes, n)
	return id
}

// AppendChild links child as the last child of parent, preserving
// insertion order, which is semantically meaningful for a YANG schema
// tree.
func (t *Tree) AppendChild(parent, child NodeID) {
	p := t.Node(parent)
	c := t.Node(child)
	if p == nil || c == nil {
		return
	}
	c.Parent = parent
	c.PrevSibling = p.LastChild
	c.NextSibling = NilNode
	if prev := t.Node(p.LastChild); prev != nil {
		prev.NextSibling = child
	} else {
		p.FirstChild = child
	}
	p.LastChild = child
}

// RemoveChild unlinks child from its parent's sibling chain without
// touching grandchildren -- used when a `uses` placeholder is replaced by
// its expansion, and whenever a node is re-parented elsewhere in the tree.
func (t *Tree) RemoveChild(child NodeID) {
	c := t.Node(child)
	if c == nil {
		return
	}
	if prev := t.Node(c.PrevSibling); prev != nil {
		prev.NextSibling = c.NextSibling
	} else if p := t.Node(c.Parent); p != nil {
		p.FirstChild = c.NextSibling
	}
	if next := t.Node(c.NextSibling); next != nil {
		next.PrevSibling = c.PrevSibling
	} else if p := t.Node(c.Parent); p != nil {
		p.LastChild = c.PrevSibling
	}
	c.Parent = NilNode
	c.NextSibling = NilNode
	c.PrevSibling = NilNode
}

// InsertAfter links newNode immediately after anchor in anchor's sibling
// chain, under the same parent. Used to splice a uses expansion's cloned
// children in at the uses node's original sibling position.
func (t *Tree) InsertAfter(anchor, newNode NodeID) {
	a := t.Node(anchor)
	n := t.Node(newNode)
	if a == nil || n == nil {
		return
	}
	parent := a.Parent
	n.Parent = parent
	n.PrevSibling = anchor
	n.NextSibling = a.NextSibling
	if next := t.Node(a.NextSibling); next != nil {
		next.PrevSibling = newNode
	} else if p := t.Node(parent); p != nil {
		p.LastChild = newNode
	}
	a.NextSibling = newNode
}

// ModuleByName returns the NodeID of the top-level module (not submodule)
// with the given name, or NilNode.
func (t *Tree) ModuleByName(name string) NodeID {
	for _, r := range t.Roots {
		n := t.Node(r)
		if n != nil && n.Kind == KindModule && n.Name == name {
			return r
		}
	}
	return NilNode
}

// SubmoduleByName returns the NodeID of the top-level submodule with the
// given name, or NilNode.
func (t *Tree) SubmoduleByName(name string) NodeID {
	for _, r := range t.Roots {
		n := t.Node(r)
		if n != nil && n.Kind == KindSubmodule && n.Name == name {
			return r
		}
	}
	return NilNode
}

// Children returns the ordered list of id's immediate children.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	n := t.Node(id)
	if n == nil {
		return out
	}
	for c := n.FirstChild; c != NilNode; {
		out = append(out, c)
		c = t.Node(c).NextSibling
	}
	return out
}

// NearestModule walks Parent links to find the enclosing module or
// submodule. It does not special-case uses-expansion re-namespacing --
// callers that need the using context's namespace pass it explicitly.
func (t *Tree) NearestModule(id NodeID) NodeID {
	for cur := id; cur != NilNode; {
		n := t.Node(cur)
		if n == nil {
			return NilNode
		}
		if n.Kind == KindModule || n.Kind == KindSubmodule {
			return cur
		}
		cur = n.Parent
	}
	return NilNode
}

// collisionScope returns the node whose ChildIndex authoritatively governs
// uniqueness for a candidate child of holder: a `case`'s children share
// its enclosing `choice`'s scope, and an `augment`'s children share its
// target's scope.
func (t *Tree) collisionScope(holder NodeID) NodeID {
	n := t.Node(holder)
	if n == nil {
		return holder
	}
	switch n.Kind {
	case KindCase:
		return n.Parent
	case KindAugment:
		if n.Augment != nil && n.Augment.Target != NilNode {
			return n.Augment.Target
		}
	}
	return holder
}

// DetectCollidingChild reports the NodeID of an existing child of holder's
// collision scope that already uses (name, ns), or NilNode if none.
func (t *Tree) DetectCollidingChild(holder NodeID, name, ns string) NodeID {
	scope := t.Node(t.collisionScope(holder))
	if scope == nil || scope.ChildIndex == nil {
		return NilNode
	}
	if id, ok := scope.ChildIndex[SchemaId{Name: name, Namespace: ns}]; ok {
		return id
	}
	return NilNode
}

// IndexChild registers child under holder's collision scope's ChildIndex.
// Returns a ConstraintError if (name, ns) is already taken.
func (t *Tree) IndexChild(holder, child NodeID, name, ns string) error {
	scopeID := t.collisionScope(holder)
	scope := t.Node(scopeID)
	if scope == nil {
		return yangerr.NewInternal(nil, "IndexChild: nil collision scope for holder %d", holder)
	}
	if scope.ChildIndex == nil {
		scope.ChildIndex = make(map[SchemaId]NodeID)
	}
	key := SchemaId{Name: name, Namespace: ns}
	if existing, ok := scope.ChildIndex[key]; ok && existing != child {
		return yangerr.NewConstraint(yangerr.Collision, t.Node(child).Pos, nil,
			"%q is already defined at this scope (see %s)", name, t.Node(existing).Pos)
	}
	scope.ChildIndex[key] = child
	return nil
}

// Clone deep-copies the subtree rooted at src into dst's arena, re-parenting
// to parent, re-namespacing every node to ns, and never sharing capability
// record pointers with the source. It returns the id of the cloned root
// in dst.
func Clone(dst *Tree, src *Tree, srcRoot NodeID, parent NodeID, ns string) NodeID {
	orig := src.Node(srcRoot)
	if orig == nil {
		return NilNode
	}

	copyNode := *orig
	copyNode.Namespace = ns
	copyNode.Parent = parent
	copyNode.FirstChild = NilNode
	copyNode.LastChild = NilNode
	copyNode.NextSibling = NilNode
	copyNode.PrevSibling = NilNode
	copyNode.ChildIndex = nil
	copyNode.DefaultChild = NilNode
	copyNode.When = append([]string(nil), orig.When...)
	copyNode.IfFeature = append([]string(nil), orig.IfFeature...)
	copyNode.Must = append([]string(nil), orig.Must...)

	cloneCapabilityRecords(&copyNode, orig)

	newID := NodeID(len(dst.nodes))
	copyNode.ID = newID
	dst.nodes = append(dst.nodes, &copyNode)

	for c := orig.FirstChild; c != NilNode; {
		childCopy := Clone(dst, src, c, newID, ns)
		dst.AppendChild(newID, childCopy)
		c = src.Node(c).NextSibling
	}

	return newID
}

func cloneCapabilityRecords(dst, src *Node) {
	if src.Leaf != nil {
		l := *src.Leaf
		dst.Leaf = &l
	}
	if src.List != nil {
		l := *src.List
		l.Key = append([]string(nil), src.List.Key...)
		dst.List = &l
	}
	if src.Choice != nil {
		c := *src.Choice
		dst.Choice = &c
	}
	if src.Grouping != nil {
		g := *src.Grouping
		dst.Grouping = &g
	}
	if src.Uses != nil {
		u := *src.Uses
		u.Refines = append([]RefineDirective(nil), src.Uses.Refines...)
		u.InlineAugments = append([]NodeID(nil), src.Uses.InlineAugments...)
		dst.Uses = &u
	}
	if src.Augment != nil {
		a := *src.Augment
		a.TargetPath = append([]string(nil), src.Augment.TargetPath...)
		dst.Augment = &a
	}
	if src.Typedef != nil {
		td := *src.Typedef
		dst.Typedef = &td
	}
	if src.Identity != nil {
		i := *src.Identity
		dst.Identity = &i
	}
	if src.Feature != nil {
		f := *src.Feature
		f.IfFeatureExpr = append([]string(nil), src.Feature.IfFeatureExpr...)
		dst.Feature = &f
	}
	if src.Module != nil {
		m := *src.Module
		m.Imports = append([]ModuleImport(nil), src.Module.Imports...)
		m.Includes = append([]ModuleInclude(nil), src.Module.Includes...)
		dst.Module = &m
	}
	if src.Deviation != nil {
		d := *src.Deviation
		d.TargetPath = append([]string(nil), src.Deviation.TargetPath...)
		d.Deviates = append([]NodeID(nil), src.Deviation.Deviates...)
		dst.Deviation = &d
	}
	if src.Deviate != nil {
		d := *src.Deviate
		d.Must = append([]string(nil), src.Deviate.Must...)
		dst.Deviate = &d
	}
	if src.Extension != nil {
		e := *src.Extension
		dst.Extension = &e
	}
}
