// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package ast

import "testing"

func TestParseModuleSkeleton(t *testing.T) {
	stmt, err := Parse("test", `
module foo {
	namespace "urn:foo";
	prefix f;

	container bar {
		leaf baz {
			type string;
		}
	}
}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt.Keyword != "module" || stmt.Argument != "foo" {
		t.Fatalf("got %s, want module %q", stmt.Keyword, "foo")
	}
	if ns := stmt.Find("namespace"); ns == nil || ns.Argument != "urn:foo" {
		t.Fatalf("namespace not parsed correctly: %v", ns)
	}
	cont := stmt.Find("container")
	if cont == nil || cont.Argument != "bar" {
		t.Fatalf("container not parsed correctly: %v", cont)
	}
	leaf := cont.Find("leaf")
	if leaf == nil || leaf.Argument != "baz" {
		t.Fatalf("leaf not parsed correctly: %v", leaf)
	}
	if typ := leaf.Find("type"); typ == nil || typ.Argument != "string" {
		t.Fatalf("type not parsed correctly: %v", typ)
	}
}

func TestParsePrefixedExtensionStatement(t *testing.T) {
	stmt, err := Parse("test", `
module foo {
	namespace "urn:foo";
	prefix f;
	vendor:index 3;
}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ext *Statement
	for _, c := range stmt.Children {
		if c.Prefix == "vendor" {
			ext = c
		}
	}
	if ext == nil || ext.Keyword != "index" || ext.Argument != "3" {
		t.Fatalf("extension statement not parsed correctly: %v", ext)
	}
}

func TestParseQuotedStringConcatenation(t *testing.T) {
	stmt, err := Parse("test", `
module foo {
	namespace "urn:foo";
	prefix f;
	description "hello " + "world";
}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	desc := stmt.Find("description")
	if desc == nil || desc.Argument != "hello world" {
		t.Fatalf("concatenated argument not parsed correctly: %v", desc)
	}
}

func TestParseUnterminatedBlockIsError(t *testing.T) {
	_, err := Parse("test", `module foo { namespace "urn:foo";`)
	if err == nil {
		t.Fatalf("expected an error for an unterminated block")
	}
}

func TestParseMismatchedBraceIsError(t *testing.T) {
	_, err := Parse("test", `module foo } namespace "urn:foo"; prefix f; }`)
	if err == nil {
		t.Fatalf("expected an error for a mismatched brace")
	}
}
