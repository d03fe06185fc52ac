// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"testing"

	"github.com/danos/yang-compiler/ast"
)

func parseModule(t *testing.T, input string) *Tree {
	t.Helper()
	stmt, err := ast.Parse("test", input)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	tree, err := FromStatement(stmt)
	if err != nil {
		t.Fatalf("FromStatement: %v", err)
	}
	return tree
}

func TestFromStatementBuildsContainerLeafList(t *testing.T) {
	tree := parseModule(t, `
module foo {
	namespace "urn:foo";
	prefix f;

	container top {
		leaf name {
			type string;
		}
		list entries {
			key "id";
			leaf id {
				type uint32;
			}
			leaf-list tags {
				type string;
			}
		}
	}
}`)

	mod := tree.Node(tree.Root)
	if mod.Kind != KindModule || mod.Name != "foo" || mod.Namespace != "urn:foo" {
		t.Fatalf("unexpected module node: %+v", mod)
	}

	children := tree.Children(tree.Root)
	if len(children) != 1 {
		t.Fatalf("expected 1 top-level child, got %d", len(children))
	}
	top := tree.Node(children[0])
	if top.Kind != KindContainer || top.Name != "top" {
		t.Fatalf("unexpected container node: %+v", top)
	}

	topChildren := tree.Children(children[0])
	if len(topChildren) != 2 {
		t.Fatalf("expected 2 children of 'top', got %d", len(topChildren))
	}

	name := tree.Node(topChildren[0])
	if name.Kind != KindLeaf || name.Name != "name" || name.Leaf == nil {
		t.Fatalf("unexpected leaf node: %+v", name)
	}
	if name.Leaf.Type.Name != "string" {
		t.Fatalf("unexpected leaf type: %+v", name.Leaf.Type)
	}

	entries := tree.Node(topChildren[1])
	if entries.Kind != KindList || entries.List == nil {
		t.Fatalf("unexpected list node: %+v", entries)
	}
	if len(entries.List.Key) != 1 || entries.List.Key[0] != "id" {
		t.Fatalf("unexpected list key: %+v", entries.List.Key)
	}

	entryChildren := tree.Children(topChildren[1])
	if len(entryChildren) != 2 {
		t.Fatalf("expected 2 children of 'entries', got %d", len(entryChildren))
	}
	tags := tree.Node(entryChildren[1])
	if tags.Kind != KindLeafList || !tags.Leaf.IsLeafList {
		t.Fatalf("unexpected leaf-list node: %+v", tags)
	}
}

func TestFromStatementMissingNamespaceErrors(t *testing.T) {
	stmt, err := ast.Parse("test", `
module foo {
	prefix f;
}`)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := FromStatement(stmt); err == nil {
		t.Fatalf("expected an error for a module missing 'namespace'")
	}
}

func TestBuildLeafMandatoryDefaultConflict(t *testing.T) {
	stmt, err := ast.Parse("test", `
module foo {
	namespace "urn:foo";
	prefix f;

	leaf bar {
		type string;
		mandatory true;
		default "x";
	}
}`)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := FromStatement(stmt); err == nil {
		t.Fatalf("expected an error for mandatory+default on the same leaf")
	}
}

func TestBuildListDuplicateKeyLeafErrors(t *testing.T) {
	stmt, err := ast.Parse("test", `
module foo {
	namespace "urn:foo";
	prefix f;

	list entries {
		key "id id";
		leaf id {
			type uint32;
		}
	}
}`)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := FromStatement(stmt); err == nil {
		t.Fatalf("expected an error for a repeated key leaf name")
	}
}

func TestBuildChoiceWithDefaultCase(t *testing.T) {
	tree := parseModule(t, `
module foo {
	namespace "urn:foo";
	prefix f;

	choice proto {
		default "tcp";
		case tcp {
			leaf port {
				type uint16;
			}
		}
		case udp {
			leaf udp-port {
				type uint16;
			}
		}
	}
}`)
	choice := tree.Node(tree.Children(tree.Root)[0])
	if choice.Kind != KindChoice {
		t.Fatalf("expected a choice node, got %s", choice.Kind)
	}
	if choice.DefaultChild == NilNode {
		t.Fatalf("expected DefaultChild to be resolved to the 'tcp' case")
	}
	if tree.Node(choice.DefaultChild).Name != "tcp" {
		t.Fatalf("expected default case 'tcp', got %s", tree.Node(choice.DefaultChild).Name)
	}
}

func TestBuildChoiceMandatoryWithDefaultErrors(t *testing.T) {
	stmt, err := ast.Parse("test", `
module foo {
	namespace "urn:foo";
	prefix f;

	choice proto {
		mandatory true;
		default "tcp";
		case tcp {
			leaf port {
				type uint16;
			}
		}
	}
}`)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := FromStatement(stmt); err == nil {
		t.Fatalf("expected an error for mandatory choice with a default case")
	}
}

func TestBuildChoiceCaseSharesChoiceCollisionScope(t *testing.T) {
	stmt, err := ast.Parse("test", `
module foo {
	namespace "urn:foo";
	prefix f;

	choice proto {
		case tcp {
			leaf port {
				type uint16;
			}
		}
		case udp {
			leaf port {
				type uint16;
			}
		}
	}
}`)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if _, err := FromStatement(stmt); err == nil {
		t.Fatalf("expected a collision error: both cases declare a 'port' leaf in the choice's shared scope")
	}
}

func TestAppendExtensionStatement(t *testing.T) {
	tree := parseModule(t, `
module foo {
	namespace "urn:foo";
	prefix f;
	vendor:index 3;
}`)
	children := tree.Children(tree.Root)
	if len(children) != 1 {
		t.Fatalf("expected 1 extension child, got %d", len(children))
	}
	ext := tree.Node(children[0])
	if ext.Kind != KindExtension || ext.Name != "vendor:index" {
		t.Fatalf("unexpected extension node: %+v", ext)
	}
	if ext.Extension == nil || !ext.Extension.HasArgument || ext.Extension.ArgumentName != "3" {
		t.Fatalf("unexpected extension info: %+v", ext.Extension)
	}
}
