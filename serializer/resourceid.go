// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package serializer exposes the resolved schema tree by root schema
// context plus protocol annotations, and supports resource-id-based
// lookup -- the one piece of the pipeline that runs after the resolver
// has handed off an immutable tree.
package serializer

import (
	"fmt"

	"github.com/danos/utils/pathutil"
	"github.com/danos/yang-compiler/schema"
)

// elementKind distinguishes a plain branch-point NodeKey from its two
// specializations.
type elementKind int

const (
	kindNode elementKind = iota
	kindListKey
	kindLeafListKey
)

// KeyValue is one key-leaf name/value pair of a ListKey element, ordered
// per the list's declared `key` statement.
type KeyValue struct {
	Name  string
	Value string
}

// element is one step of a ResourceId. Only NodeKey's SchemaId matters for
// schema (not instance) resolution; Keys/Value carry the instance-identity
// information a data-plane consumer needs but this compiler never
// evaluates.
type element struct {
	schema.SchemaId
	kind  elementKind
	keys  []KeyValue
	value string
}

// ResourceId is an ordered list of NodeKeys, each a (name, namespace)
// pair optionally carrying list-entry or leaf-list-entry addressing.
type ResourceId struct {
	elements []element
}

// Elements returns the ResourceId's steps as (name, namespace) pairs, in
// root-to-leaf order.
func (r ResourceId) Elements() []schema.SchemaId {
	out := make([]schema.SchemaId, len(r.elements))
	for i, e := range r.elements {
		out[i] = e.SchemaId
	}
	return out
}

// String renders the ResourceId as a slash-separated path using
// pathutil's canonical path construction.
func (r ResourceId) String() string {
	names := make([]string, len(r.elements))
	for i, e := range r.elements {
		names[i] = e.Name
	}
	return pathutil.Pathstr(names)
}

// ResourceIdBuilder incrementally assembles a ResourceId, enforcing the
// following rules: a leaf-list key is terminal, a key-leaf may only be
// added to a list-shaped current element (promoting a plain NodeKey to a
// ListKey on first use), and build() requires at least one element.
type ResourceIdBuilder struct {
	elements []element
	err      error
}

// NewResourceIdBuilder returns an empty builder.
func NewResourceIdBuilder() *ResourceIdBuilder {
	return &ResourceIdBuilder{}
}

// addBranchPointSchema appends a plain schema branch-point.
func (b *ResourceIdBuilder) addBranchPointSchema(name, ns string) *ResourceIdBuilder {
	if b.err != nil {
		return b
	}
	if n := len(b.elements); n > 0 && b.elements[n-1].kind == kindLeafListKey {
		b.err = fmt.Errorf("resourceid: cannot add a branch point after a leaf-list key")
		return b
	}
	b.elements = append(b.elements, element{SchemaId: schema.SchemaId{Name: name, Namespace: ns}, kind: kindNode})
	return b
}

// addKeyLeaf adds a key-leaf value to the current element, promoting it
// from a plain NodeKey to a ListKey on the first call for that element.
func (b *ResourceIdBuilder) addKeyLeaf(name, ns, value string) *ResourceIdBuilder {
	if b.err != nil {
		return b
	}
	n := len(b.elements)
	if n == 0 {
		b.err = fmt.Errorf("resourceid: cannot add key leaf %q with no current element", name)
		return b
	}
	cur := &b.elements[n-1]
	switch cur.kind {
	case kindNode:
		cur.kind = kindListKey
	case kindListKey:
		// already promoted; append another key-leaf component.
	default:
		b.err = fmt.Errorf("resourceid: cannot add key leaf %q to a non-list current element", name)
		return b
	}
	cur.keys = append(cur.keys, KeyValue{Name: name, Value: value})
	return b
}

// addLeafListBranchPoint appends a terminal leaf-list-entry element.
func (b *ResourceIdBuilder) addLeafListBranchPoint(name, ns, value string) *ResourceIdBuilder {
	if b.err != nil {
		return b
	}
	if n := len(b.elements); n > 0 && b.elements[n-1].kind == kindLeafListKey {
		b.err = fmt.Errorf("resourceid: cannot add a branch point after a leaf-list key")
		return b
	}
	b.elements = append(b.elements, element{
		SchemaId: schema.SchemaId{Name: name, Namespace: ns},
		kind:     kindLeafListKey,
		value:    value,
	})
	return b
}

// build finalizes the ResourceId, failing if no element was ever added or
// if an earlier operation failed its builder rule.
func (b *ResourceIdBuilder) build() (ResourceId, error) {
	if b.err != nil {
		return ResourceId{}, b.err
	}
	if len(b.elements) == 0 {
		return ResourceId{}, fmt.Errorf("resourceid: cannot build with no current key")
	}
	return ResourceId{elements: append([]element(nil), b.elements...)}, nil
}
