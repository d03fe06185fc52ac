// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package serializer

import (
	"encoding/json"

	"github.com/danos/encoding/rfc7951"
	"github.com/danos/yang-compiler/schema"
)

// Annotation carries protocol-encoding hints precomputed for a schema
// node, which a downstream (out-of-scope) runtime codec can use without
// re-deriving them from the schema tree. The only hint held is the
// default-value encoding.
type Annotation struct {
	// DefaultJSON is the RFC 7951 JSON encoding of the node's default
	// value, present only for leafs/leaf-lists that declare one.
	DefaultJSON json.RawMessage
}

// Annotations is externally registered, keyed by the node's SchemaId, and
// merged with the precomputed default-value annotations at NewContext
// time (a caller-supplied entry always wins over a precomputed one).
type Annotations map[schema.SchemaId]Annotation

// Context exposes a resolved schema.Tree by root schema context plus
// protocol annotations. The tree is treated as immutable from this point
// on; any later mutation is undefined.
type Context struct {
	tree        *schema.Tree
	annotations Annotations
}

// NewContext builds a Context over tree. It is the serializer package's
// entry point.
func NewContext(tree *schema.Tree, annotations Annotations) *Context {
	c := &Context{tree: tree, annotations: make(Annotations)}
	for k, v := range annotations {
		c.annotations[k] = v
	}
	c.precomputeDefaults()
	return c
}

// precomputeDefaults fills in a DefaultJSON annotation for every leaf and
// leaf-list that declares a default and has no caller-supplied override,
// using rfc7951's JSON encoding conventions for the raw default text.
func (c *Context) precomputeDefaults() {
	for _, r := range c.tree.Roots {
		c.walkDefaults(r)
	}
}

func (c *Context) walkDefaults(id schema.NodeID) {
	n := c.tree.Node(id)
	if n == nil {
		return
	}
	if (n.Kind == schema.KindLeaf || n.Kind == schema.KindLeafList) && n.Leaf.HasDefault {
		key := schema.SchemaId{Name: n.Name, Namespace: n.Namespace}
		if _, ok := c.annotations[key]; !ok {
			if enc, err := rfc7951.Marshal(n.Leaf.Default); err == nil {
				c.annotations[key] = Annotation{DefaultJSON: json.RawMessage(enc)}
			}
		}
	}
	for _, ch := range c.tree.Children(id) {
		c.walkDefaults(ch)
	}
}

// rootContext returns the module-level schema context: every top-level
// module/submodule NodeID the tree was built from.
func (c *Context) rootContext() []schema.NodeID {
	return c.tree.Roots
}

// protocolAnnotations returns the externally registered (plus
// precomputed) annotation set, keyed by (name, namespace).
func (c *Context) protocolAnnotations() Annotations {
	return c.annotations
}

// Lookup resolves a ResourceId against the tree, walking schema.Tree's
// collision-scope-aware child indices and ignoring every element's
// key-leaf/leaf-list value -- this is schema, not instance, resolution,
// so only each element's SchemaId is consulted.
func (c *Context) Lookup(r ResourceId) (schema.NodeID, bool) {
	if len(r.elements) == 0 {
		return schema.NilNode, false
	}
	var cur schema.NodeID
	for i, e := range r.elements {
		var found schema.NodeID
		if i == 0 {
			found = c.lookupAmongRoots(e.SchemaId)
		} else {
			found = lookupChild(c.tree, cur, e.SchemaId)
		}
		if found == schema.NilNode {
			return schema.NilNode, false
		}
		cur = found
	}
	return cur, true
}

func (c *Context) lookupAmongRoots(key schema.SchemaId) schema.NodeID {
	for _, r := range c.tree.Roots {
		if found := lookupChild(c.tree, r, key); found != schema.NilNode {
			return found
		}
	}
	return schema.NilNode
}

// lookupChild finds holder's (name, namespace) child, transparently
// descending into a directly-nested choice's case children -- those are
// indexed under the choice's own ChildIndex, not holder's, since a
// choice/case pair contributes no schema identity of its own to a
// ResourceId.
func lookupChild(t *schema.Tree, holder schema.NodeID, key schema.SchemaId) schema.NodeID {
	hn := t.Node(holder)
	if hn == nil {
		return schema.NilNode
	}
	if id, ok := hn.ChildIndex[key]; ok {
		return id
	}
	for _, c := range t.Children(holder) {
		cn := t.Node(c)
		if cn.Kind == schema.KindChoice {
			if id, ok := cn.ChildIndex[key]; ok {
				return id
			}
		}
	}
	return schema.NilNode
}

// ResourceIdFor builds the ResourceId that Lookup would resolve back to
// id, by walking id's ancestors up to its nearest module. List and
// leaf-list entry addressing
// (key-leaf/leaf-list values) are instance-level and not reconstructable
// from the schema tree alone, so the returned ResourceId's ListKey/
// LeafListKey elements carry no key values -- it still round-trips
// through Lookup because Lookup ignores them too.
func ResourceIdFor(t *schema.Tree, id schema.NodeID) (ResourceId, error) {
	var chain []schema.NodeID
	for cur := id; cur != schema.NilNode; {
		n := t.Node(cur)
		if n == nil {
			break
		}
		if n.Kind == schema.KindModule || n.Kind == schema.KindSubmodule {
			break
		}
		if n.Kind != schema.KindCase && n.Kind != schema.KindChoice {
			chain = append(chain, cur)
		}
		cur = n.Parent
	}

	b := NewResourceIdBuilder()
	for i := len(chain) - 1; i >= 0; i-- {
		n := t.Node(chain[i])
		switch n.Kind {
		case schema.KindLeafList:
			b.addLeafListBranchPoint(n.Name, n.Namespace, "")
		case schema.KindList:
			b.addBranchPointSchema(n.Name, n.Namespace)
			for _, k := range n.List.Key {
				b.addKeyLeaf(k, n.Namespace, "")
			}
		default:
			b.addBranchPointSchema(n.Name, n.Namespace)
		}
	}
	return b.build()
}
