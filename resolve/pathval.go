// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"strings"

	"github.com/danos/yang-compiler/schema"
	"github.com/danos/yang-compiler/yangerr"
)

// validatePaths is phase 8: resolve every `leafref` path against the
// final tree, then run the validations that only make sense once the
// tree has reached its final shape -- `unique` constraint resolution and
// the parent-to-child status-inheritance check. The status of a node
// reached through a reference is not checked.
func (l *linker) validatePaths() error {
	for _, r := range l.tree.Roots {
		if err := l.walkValidate(r, r); err != nil {
			return err
		}
	}
	return nil
}

func (l *linker) walkValidate(id, moduleID schema.NodeID) error {
	n := l.tree.Node(id)
	if n == nil {
		return nil
	}

	switch n.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		if err := l.validateLeafrefType(id, &n.Leaf.Type); err != nil {
			return err
		}
	case schema.KindList:
		if err := l.validateUnique(id, n); err != nil {
			return err
		}
	}
	if err := checkStatusInheritance(l.tree, id); err != nil {
		return err
	}

	for _, c := range l.tree.Children(id) {
		if err := l.walkValidate(c, moduleID); err != nil {
			return err
		}
	}
	return nil
}

// validateLeafrefType resolves ref's leafref path (recursing into union
// members, since a union may carry a leafref arm) and fails the compile if
// it dangles.
func (l *linker) validateLeafrefType(from schema.NodeID, ref *schema.TypeRef) error {
	if ref.Name == "leafref" && ref.PathExpr != "" {
		if _, ok := l.resolveLeafrefPath(from, ref.PathExpr); !ok {
			return yangerr.NewReference(yangerr.UnresolvedReference, l.tree.Node(from).Pos, nil,
				"leafref path %q on %q does not resolve to a leaf", ref.PathExpr, l.tree.Node(from).Name)
		}
	}
	for i := range ref.Union {
		if err := l.validateLeafrefType(from, &ref.Union[i]); err != nil {
			return err
		}
	}
	return nil
}

// resolveLeafrefPath walks a leafref path expression: "current()" and
// descendant steps start relative to from, ".." steps ascend, and a
// leading "/" makes the path absolute within the nearest module's import
// scope. Predicates (`[... = current()/...]`) address instance matching,
// not schema-tree shape, so they are stripped rather than evaluated here
// (when/must evaluation is a stated Non-goal and leafref predicates are no
// different in kind).
func (l *linker) resolveLeafrefPath(from schema.NodeID, path string) (schema.NodeID, bool) {
	path = strings.TrimSpace(path)
	absolute := strings.HasPrefix(path, "/")
	path = strings.TrimPrefix(path, "/")

	var steps []string
	for _, raw := range strings.Split(path, "/") {
		if raw == "" || raw == "current()" {
			continue
		}
		if i := strings.IndexByte(raw, '['); i >= 0 {
			raw = raw[:i]
		}
		steps = append(steps, raw)
	}

	moduleID := l.tree.NearestModule(from)
	cur := from
	if absolute {
		if len(steps) == 0 {
			return schema.NilNode, false
		}
		prefix, name := splitQName(steps[0])
		start, ok := l.resolvePrefix(moduleID, prefix)
		if !ok {
			return schema.NilNode, false
		}
		next := findByName(l.tree, l.tree.Children(start), name)
		if next == schema.NilNode {
			return schema.NilNode, false
		}
		cur = next
		steps = steps[1:]
	}

	for _, step := range steps {
		if step == ".." {
			cur = l.tree.Node(cur).Parent
			continue
		}
		_, name := splitQName(step)
		next := findByName(l.tree, l.tree.Children(cur), name)
		if next == schema.NilNode {
			return schema.NilNode, false
		}
		cur = next
	}

	n := l.tree.Node(cur)
	if n == nil || (n.Kind != schema.KindLeaf && n.Kind != schema.KindLeafList) {
		return schema.NilNode, false
	}
	return cur, true
}

// validateUnique resolves each `unique` statement's descendant-leaf
// paths: every member path must reach a non-list, non-empty-typed leaf
// under the list.
func (l *linker) validateUnique(listID schema.NodeID, n *schema.Node) error {
	for _, members := range n.List.Unique {
		for _, member := range members {
			segs := strings.Split(member, "/")
			target, ok := resolveRelativePath(l.tree, l.tree.Children(listID), segs)
			if !ok {
				return yangerr.NewReference(yangerr.UnresolvedReference, n.Pos, nil,
					"unique member %q on list %q does not resolve", member, n.Name)
			}
			tn := l.tree.Node(target)
			if tn.Kind != schema.KindLeaf {
				return yangerr.NewConstraint(yangerr.ConstraintViolation, n.Pos, nil,
					"unique member %q on list %q does not resolve to a leaf", member, n.Name)
			}
			if baseBuiltinType(l.tree, tn) == "empty" {
				return yangerr.NewConstraint(yangerr.ConstraintViolation, n.Pos, nil,
					"unique member %q on list %q resolves to an empty-typed leaf", member, n.Name)
			}
		}
	}
	return nil
}

// baseBuiltinType follows a leaf's type chain down through resolved
// typedefs to the ultimate built-in type name.
func baseBuiltinType(t *schema.Tree, leaf *schema.Node) string {
	ref := leaf.Leaf.Type
	for {
		if builtinTypes[ref.Name] {
			return ref.Name
		}
		if ref.Target == schema.NilNode {
			return ref.Name
		}
		td := t.Node(ref.Target)
		if td == nil || td.Typedef == nil {
			return ref.Name
		}
		if builtinTypes[td.Typedef.BaseType] {
			return td.Typedef.BaseType
		}
		if td.Typedef.BaseTarget == schema.NilNode {
			return td.Typedef.BaseType
		}
		next := t.Node(td.Typedef.BaseTarget)
		if next == nil || next.Typedef == nil {
			return td.Typedef.BaseType
		}
		ref = schema.TypeRef{Name: td.Typedef.BaseType, Target: td.Typedef.BaseTarget}
	}
}

// checkStatusInheritance enforces that status is monotonic non-increasing
// down the tree: a deprecated node may not contain a current child's
// promise of support.
func checkStatusInheritance(t *schema.Tree, id schema.NodeID) error {
	n := t.Node(id)
	p := t.Node(n.Parent)
	if p == nil || p.Kind == schema.KindModule || p.Kind == schema.KindSubmodule {
		return nil
	}
	if n.Status < p.Status {
		return yangerr.NewConstraint(yangerr.ConstraintViolation, n.Pos, nil,
			"%q has status %s but its ancestor %q is %s", n.Name, n.Status, p.Name, p.Status)
	}
	return nil
}
