// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newLeaf(t *Tree, name string) NodeID {
	id := t.New(KindLeaf)
	n := t.Node(id)
	n.Name = name
	n.Leaf = &LeafInfo{Config: true, Type: TypeRef{Name: "string"}}
	n.Must = []string{"current() != ''"}
	return id
}

func TestCloneIsIndependentOfSource(t *testing.T) {
	src := NewTree()
	cont := src.New(KindContainer)
	src.Node(cont).Name = "top"
	leaf := newLeaf(src, "name")
	src.AppendChild(cont, leaf)
	if err := src.IndexChild(cont, leaf, "name", "urn:foo"); err != nil {
		t.Fatalf("IndexChild: %v", err)
	}

	before := cmp.Diff(src.Node(leaf).Leaf, &LeafInfo{Config: true, Type: TypeRef{Name: "string"}})
	if before != "" {
		t.Fatalf("unexpected pre-clone leaf state: %s", before)
	}

	dst := NewTree()
	clonedRoot := Clone(dst, src, cont, NilNode, "urn:bar")

	clonedLeafID := dst.Children(clonedRoot)[0]
	clonedLeaf := dst.Node(clonedLeafID)

	// Mutate the clone; the source must be untouched.
	clonedLeaf.Leaf.Type.Name = "uint32"
	clonedLeaf.Must[0] = "mutated"
	clonedLeaf.Name = "renamed"

	srcLeaf := src.Node(leaf)
	if srcLeaf.Leaf.Type.Name != "string" {
		t.Fatalf("source leaf type mutated via clone: %s", srcLeaf.Leaf.Type.Name)
	}
	if srcLeaf.Must[0] != "current() != ''" {
		t.Fatalf("source leaf Must mutated via clone: %v", srcLeaf.Must)
	}
	if srcLeaf.Name != "name" {
		t.Fatalf("source leaf Name mutated via clone: %s", srcLeaf.Name)
	}

	if diff := cmp.Diff(srcLeaf.Leaf, &LeafInfo{Config: true, Type: TypeRef{Name: "string"}}); diff != "" {
		t.Fatalf("source leaf capability record diverged after clone+mutate: %s", diff)
	}

	if clonedLeaf.Namespace != "urn:bar" {
		t.Fatalf("clone not renamespaced: got %q", clonedLeaf.Namespace)
	}
	if src.Node(cont).Namespace == "urn:bar" {
		t.Fatalf("source container namespace leaked the clone's namespace")
	}
}

func TestIndexChildDetectsCollision(t *testing.T) {
	tree := NewTree()
	cont := tree.New(KindContainer)
	a := newLeaf(tree, "dup")
	b := newLeaf(tree, "dup")
	tree.AppendChild(cont, a)
	tree.AppendChild(cont, b)

	if err := tree.IndexChild(cont, a, "dup", "urn:foo"); err != nil {
		t.Fatalf("first IndexChild should succeed: %v", err)
	}
	if err := tree.IndexChild(cont, b, "dup", "urn:foo"); err == nil {
		t.Fatalf("expected a collision error indexing a second 'dup' child")
	}
}

func TestIndexChildSameNodeIsIdempotent(t *testing.T) {
	tree := NewTree()
	cont := tree.New(KindContainer)
	a := newLeaf(tree, "x")
	tree.AppendChild(cont, a)

	if err := tree.IndexChild(cont, a, "x", "urn:foo"); err != nil {
		t.Fatalf("first IndexChild: %v", err)
	}
	if err := tree.IndexChild(cont, a, "x", "urn:foo"); err != nil {
		t.Fatalf("re-indexing the same child id should not collide: %v", err)
	}
}

func TestCollisionScopeCaseSharesChoice(t *testing.T) {
	tree := NewTree()
	choice := tree.New(KindChoice)
	tree.Node(choice).Choice = &ChoiceInfo{}
	caseA := tree.New(KindCase)
	tree.AppendChild(choice, caseA)

	if got := tree.collisionScope(caseA); got != choice {
		t.Fatalf("collisionScope(case) = %d, want enclosing choice %d", got, choice)
	}
}

func TestCollisionScopeAugmentSharesTarget(t *testing.T) {
	tree := NewTree()
	target := tree.New(KindContainer)
	augment := tree.New(KindAugment)
	tree.Node(augment).Augment = &AugmentInfo{Target: target}

	if got := tree.collisionScope(augment); got != target {
		t.Fatalf("collisionScope(augment) = %d, want target %d", got, target)
	}
}

func TestRemoveChildUnlinksFromSiblingChain(t *testing.T) {
	tree := NewTree()
	parent := tree.New(KindContainer)
	a := newLeaf(tree, "a")
	b := newLeaf(tree, "b")
	c := newLeaf(tree, "c")
	tree.AppendChild(parent, a)
	tree.AppendChild(parent, b)
	tree.AppendChild(parent, c)

	tree.RemoveChild(b)

	children := tree.Children(parent)
	if len(children) != 2 || children[0] != a || children[1] != c {
		t.Fatalf("unexpected sibling chain after RemoveChild: %v", children)
	}
}

func TestNearestModuleWalksToEnclosingModule(t *testing.T) {
	tree := NewTree()
	mod := tree.New(KindModule)
	cont := tree.New(KindContainer)
	leaf := newLeaf(tree, "x")
	tree.AppendChild(mod, cont)
	tree.AppendChild(cont, leaf)

	if got := tree.NearestModule(leaf); got != mod {
		t.Fatalf("NearestModule(leaf) = %d, want module %d", got, mod)
	}
}
