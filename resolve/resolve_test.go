// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"testing"

	"github.com/danos/yang-compiler/ast"
	"github.com/danos/yang-compiler/schema"
)

func mustParse(t *testing.T, name, input string) *ast.Statement {
	t.Helper()
	stmt, err := ast.Parse(name, input)
	if err != nil {
		t.Fatalf("ast.Parse(%s): %v", name, err)
	}
	return stmt
}

func TestResolveSetBasicModule(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	container top {
		leaf name {
			type string;
		}
	}
}`)

	tree, err := ResolveSet([]*ast.Statement{root}, Config{})
	if err != nil {
		t.Fatalf("ResolveSet: %v", err)
	}
	if len(tree.Roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Roots))
	}
	mod := tree.Node(tree.Roots[0])
	if mod.Kind != schema.KindModule || mod.Name != "foo" {
		t.Fatalf("unexpected module: %+v", mod)
	}
}

func TestResolveSetImportBindsPrefixAndOrdersModules(t *testing.T) {
	types := mustParse(t, "types", `
module types {
	namespace "urn:types";
	prefix t;

	typedef percentage {
		type uint8 {
			range "0..100";
		}
	}
}`)
	foo := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	import types {
		prefix t;
	}

	leaf level {
		type t:percentage;
	}
}`)

	tree, err := ResolveSet([]*ast.Statement{foo, types}, Config{})
	if err != nil {
		t.Fatalf("ResolveSet: %v", err)
	}
	fooMod := tree.ModuleByName("foo")
	leaf := tree.Children(fooMod)[0]
	ln := tree.Node(leaf)
	if ln.Leaf.Type.Status != schema.Resolved {
		t.Fatalf("expected leaf type to resolve, got status %s", ln.Leaf.Type.Status)
	}
	if tree.Node(ln.Leaf.Type.Target).Name != "percentage" {
		t.Fatalf("leaf type did not resolve to the imported typedef")
	}
}

func TestResolveSetMissingImportFails(t *testing.T) {
	foo := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	import nosuch {
		prefix n;
	}
}`)
	if _, err := ResolveSet([]*ast.Statement{foo}, Config{}); err == nil {
		t.Fatalf("expected an error for an unresolvable import")
	}
}

func TestResolveSetUsesExpandsGroupingWithRefine(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	grouping common {
		leaf name {
			type string;
		}
	}

	container top {
		uses common {
			refine "name" {
				mandatory true;
			}
		}
	}
}`)

	tree, err := ResolveSet([]*ast.Statement{root}, Config{})
	if err != nil {
		t.Fatalf("ResolveSet: %v", err)
	}
	mod := tree.Roots[0]
	top := tree.Children(mod)[1]
	topChildren := tree.Children(top)
	if len(topChildren) != 1 {
		t.Fatalf("expected the uses placeholder to be replaced by exactly 1 cloned leaf, got %d", len(topChildren))
	}
	name := tree.Node(topChildren[0])
	if name.Kind != schema.KindLeaf || name.Name != "name" {
		t.Fatalf("expected expansion to produce leaf 'name', got %+v", name)
	}
	if !name.Leaf.Mandatory {
		t.Fatalf("expected refine to have set 'name' mandatory")
	}
}

func TestResolveSetUsesUnresolvedGroupingFails(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	container top {
		uses nosuch;
	}
}`)
	if _, err := ResolveSet([]*ast.Statement{root}, Config{}); err == nil {
		t.Fatalf("expected an error for a uses target that does not resolve")
	}
}

func TestResolveSetTopLevelAugment(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	container top {
	}

	augment "/top" {
		leaf extra {
			type string;
		}
	}
}`)

	tree, err := ResolveSet([]*ast.Statement{root}, Config{})
	if err != nil {
		t.Fatalf("ResolveSet: %v", err)
	}
	mod := tree.Roots[0]
	top := tree.Children(mod)[0]
	children := tree.Children(top)
	if len(children) != 1 || tree.Node(children[0]).Name != "extra" {
		t.Fatalf("expected augment to graft 'extra' under 'top', got %v", children)
	}
}

func TestResolveSetAugmentIntoLeafFails(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	leaf top {
		type string;
	}

	augment "/top" {
		leaf extra {
			type string;
		}
	}
}`)
	if _, err := ResolveSet([]*ast.Statement{root}, Config{}); err == nil {
		t.Fatalf("expected an error augmenting into a leaf")
	}
}

func TestResolveSetDeviationNotSupportedRemovesNode(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	container top {
		leaf legacy {
			type string;
		}
		leaf keep {
			type string;
		}
	}

	deviation "/top/legacy" {
		deviate not-supported;
	}
}`)

	tree, err := ResolveSet([]*ast.Statement{root}, Config{})
	if err != nil {
		t.Fatalf("ResolveSet: %v", err)
	}
	mod := tree.Roots[0]
	top := tree.Children(mod)[0]
	children := tree.Children(top)
	if len(children) != 1 || tree.Node(children[0]).Name != "keep" {
		t.Fatalf("expected 'legacy' removed by deviation, got %v", children)
	}
}

func TestResolveSetDeviationAddDefault(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	container top {
		leaf mode {
			type string;
		}
	}

	deviation "/top/mode" {
		deviate add {
			default "auto";
		}
	}
}`)

	tree, err := ResolveSet([]*ast.Statement{root}, Config{})
	if err != nil {
		t.Fatalf("ResolveSet: %v", err)
	}
	mod := tree.Roots[0]
	top := tree.Children(mod)[0]
	leaf := tree.Node(tree.Children(top)[0])
	if !leaf.Leaf.HasDefault || leaf.Leaf.Default != "auto" {
		t.Fatalf("expected deviate add to set default 'auto', got %+v", leaf.Leaf)
	}
}

func TestResolveSetDeviationDeleteRequiresMatchingDefault(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	container top {
		leaf mode {
			type string;
			default "auto";
		}
	}

	deviation "/top/mode" {
		deviate delete {
			default "manual";
		}
	}
}`)
	if _, err := ResolveSet([]*ast.Statement{root}, Config{}); err == nil {
		t.Fatalf("expected an error: deviate delete's default does not match the declared default")
	}
}

func TestResolveSetLeafrefResolves(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	list entries {
		key "id";
		leaf id {
			type uint32;
		}
	}

	leaf selected {
		type leafref {
			path "/entries/id";
		}
	}
}`)

	tree, err := ResolveSet([]*ast.Statement{root}, Config{})
	if err != nil {
		t.Fatalf("ResolveSet: %v", err)
	}
	mod := tree.Roots[0]
	selected := tree.Node(tree.Children(mod)[1])
	if selected.Leaf.Type.Status != schema.Resolved {
		t.Fatalf("leafref should reach Resolved after path validation")
	}
}

func TestResolveSetDanglingLeafrefFails(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	leaf selected {
		type leafref {
			path "/nosuch/id";
		}
	}
}`)
	if _, err := ResolveSet([]*ast.Statement{root}, Config{}); err == nil {
		t.Fatalf("expected an error for a dangling leafref path")
	}
}

func TestResolveSetUniqueConstraintNonLeafFails(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	list entries {
		key "id";
		unique "sub";
		leaf id {
			type uint32;
		}
		container sub {
			leaf x {
				type string;
			}
		}
	}
}`)
	if _, err := ResolveSet([]*ast.Statement{root}, Config{}); err == nil {
		t.Fatalf("expected an error: unique member resolves to a container, not a leaf")
	}
}

func TestResolveSetStatusInheritanceViolationFails(t *testing.T) {
	root := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	container top {
		status deprecated;

		leaf x {
			type string;
		}
	}
}`)
	if _, err := ResolveSet([]*ast.Statement{root}, Config{}); err == nil {
		t.Fatalf("expected an error: current child under a deprecated ancestor")
	}
}

func TestResolveSetSubmoduleInclusion(t *testing.T) {
	sub := mustParse(t, "foo-extra", `
submodule foo-extra {
	belongs-to foo {
		prefix f;
	}

	leaf extra {
		type string;
	}
}`)
	foo := mustParse(t, "foo", `
module foo {
	namespace "urn:foo";
	prefix f;

	include foo-extra;
}`)

	tree, err := ResolveSet([]*ast.Statement{foo, sub}, Config{})
	if err != nil {
		t.Fatalf("ResolveSet: %v", err)
	}
	mod := tree.ModuleByName("foo")
	children := tree.Children(mod)
	if len(children) != 1 || tree.Node(children[0]).Name != "extra" {
		t.Fatalf("expected the submodule's 'extra' leaf pulled into 'foo', got %v", children)
	}
}
