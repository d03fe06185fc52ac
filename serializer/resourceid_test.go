// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package serializer

import (
	"strings"
	"testing"
)

func TestResourceIdBuilderPlainPath(t *testing.T) {
	id, err := NewResourceIdBuilder().
		addBranchPointSchema("top", "urn:foo").
		addBranchPointSchema("name", "urn:foo").
		build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	els := id.Elements()
	if len(els) != 2 || els[0].Name != "top" || els[1].Name != "name" {
		t.Fatalf("unexpected Elements(): %+v", els)
	}
	// String()'s exact separator/prefix convention is delegated to
	// pathutil.Pathstr; only check both steps made it into the rendering.
	s := id.String()
	if !strings.Contains(s, "top") || !strings.Contains(s, "name") {
		t.Fatalf("String() = %q, expected it to mention both path steps", s)
	}
}

func TestResourceIdBuilderKeyLeafPromotesToListKey(t *testing.T) {
	id, err := NewResourceIdBuilder().
		addBranchPointSchema("entries", "urn:foo").
		addKeyLeaf("id", "urn:foo", "42").
		build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(id.elements) != 1 || id.elements[0].kind != kindListKey {
		t.Fatalf("expected the branch point to be promoted to a ListKey, got %+v", id.elements)
	}
	if id.elements[0].keys[0] != (KeyValue{Name: "id", Value: "42"}) {
		t.Fatalf("unexpected key value: %+v", id.elements[0].keys)
	}
}

func TestResourceIdBuilderKeyLeafWithNoCurrentElementErrors(t *testing.T) {
	_, err := NewResourceIdBuilder().addKeyLeaf("id", "urn:foo", "1").build()
	if err == nil {
		t.Fatalf("expected an error adding a key leaf with no current element")
	}
}

func TestResourceIdBuilderLeafListKeyIsTerminal(t *testing.T) {
	_, err := NewResourceIdBuilder().
		addLeafListBranchPoint("tags", "urn:foo", "x").
		addBranchPointSchema("nope", "urn:foo").
		build()
	if err == nil {
		t.Fatalf("expected an error appending a branch point after a leaf-list key")
	}
}

func TestResourceIdBuilderKeyLeafOnLeafListKeyErrors(t *testing.T) {
	_, err := NewResourceIdBuilder().
		addLeafListBranchPoint("tags", "urn:foo", "x").
		addKeyLeaf("id", "urn:foo", "1").
		build()
	if err == nil {
		t.Fatalf("expected an error adding a key leaf onto a leaf-list-key element")
	}
}

func TestResourceIdBuilderEmptyBuildErrors(t *testing.T) {
	if _, err := NewResourceIdBuilder().build(); err == nil {
		t.Fatalf("expected an error building a ResourceId with no elements")
	}
}

func TestResourceIdElementsPreservesOrder(t *testing.T) {
	id, err := NewResourceIdBuilder().
		addBranchPointSchema("top", "urn:foo").
		addBranchPointSchema("entries", "urn:foo").
		addKeyLeaf("id", "urn:foo", "1").
		build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	els := id.Elements()
	if len(els) != 2 || els[0].Name != "top" || els[1].Name != "entries" {
		t.Fatalf("unexpected Elements(): %+v", els)
	}
}
