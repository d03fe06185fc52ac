// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/danos/yang-compiler/schema"
	"github.com/danos/yang-compiler/yangerr"
)

// applyAugments is phase 6: for each top-level augment, in definition
// order across the dependency-sorted module list,
// resolve its target schema-path, enforce augmentability, and splice its
// children under the target with their namespace set to the augmenting
// module.
func (l *linker) applyAugments() error {
	for _, name := range l.moduleOrder {
		moduleID := l.tree.ModuleByName(name)
		if moduleID == schema.NilNode {
			continue
		}
		for _, augID := range l.tree.Children(moduleID) {
			an := l.tree.Node(augID)
			if an.Kind != schema.KindAugment {
				continue
			}
			if err := l.applyOneAugment(augID, moduleID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *linker) applyOneAugment(augID, fromModule schema.NodeID) error {
	an := l.tree.Node(augID)
	target, ok := l.resolveAbsoluteOrDescendantPath(fromModule, an.Augment.Absolute, an.Augment.TargetPath)
	if !ok {
		return yangerr.NewReference(yangerr.UnresolvedReference, an.Pos, an.Augment.TargetPath,
			"augment target %q does not resolve", pathString(an.Augment.TargetPath))
	}
	an.Augment.Target = target
	an.Augment.Status = schema.Resolved

	ns := l.tree.Node(fromModule).Namespace
	children := l.tree.Children(augID)
	if err := checkAugmentable(l.tree, target, children, an.Pos); err != nil {
		return err
	}
	if err := spliceAugmentChildren(l.tree, target, children, ns); err != nil {
		return err
	}
	return nil
}

// checkAugmentable enforces augmentability rules: a leaf or
// leaf-list cannot be augmented into, and augmenting a choice may only add
// case children (cases may themselves hold arbitrary data-def children,
// but the augment's direct children under a choice target must be cases).
func checkAugmentable(t *schema.Tree, target schema.NodeID, children []schema.NodeID, pos yangerr.Position) error {
	tn := t.Node(target)
	switch tn.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		return yangerr.NewConstraint(yangerr.IllegalAugmentTarget, pos, nil,
			"cannot augment into leaf/leaf-list %q", tn.Name)
	case schema.KindChoice:
		for _, c := range children {
			if t.Node(c).Kind != schema.KindCase {
				return yangerr.NewConstraint(yangerr.IllegalAugmentTarget, pos, nil,
					"augmenting choice %q may only add 'case' children", tn.Name)
			}
		}
	}
	return nil
}

// spliceAugmentChildren grafts children (already-built schema nodes, not
// clones -- an augment's children are defined directly in the augmenting
// module's source, never copied from elsewhere) under target, with their
// namespace set to ns (the augmenting module's), and records them in
// target's collision scope. Each child is detached from the augment
// node's own sibling chain first, so the augment node is left childless
// and a later walk never visits these nodes twice (once under target,
// once under the stale augment holder).
func spliceAugmentChildren(t *schema.Tree, target schema.NodeID, children []schema.NodeID, ns string) error {
	for _, c := range children {
		cn := t.Node(c)
		cn.Namespace = ns
		t.RemoveChild(c)
		t.AppendChild(target, c)
		if cn.Kind.IsDataOrCaseNode() {
			if err := t.IndexChild(target, c, cn.Name, ns); err != nil {
				return err
			}
		}
	}
	return nil
}

func pathString(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "/"
		}
		s += p
	}
	return s
}
