// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/danos/yang-compiler/schema"
	"github.com/danos/yang-compiler/yangerr"
)

// A `deviate not-supported` takes its target out of the tree entirely:
// applyDeviate removes the node outright, since a not-supported target
// carries no further children or attributes worth keeping.

// applyDeviations is phase 6.5, inserted after augment application since
// a deviation's target may itself be an augmented or uses-expanded node:
// resolve each deviation's target, then apply its deviate children in
// document order.
func (l *linker) applyDeviations() error {
	for _, name := range l.moduleOrder {
		moduleID := l.tree.ModuleByName(name)
		if moduleID == schema.NilNode {
			continue
		}
		for _, devID := range l.tree.Children(moduleID) {
			dn := l.tree.Node(devID)
			if dn.Kind != schema.KindDeviation {
				continue
			}
			if err := l.applyOneDeviation(devID, moduleID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *linker) applyOneDeviation(devID, fromModule schema.NodeID) error {
	dn := l.tree.Node(devID)
	target, ok := l.resolveAbsoluteOrDescendantPath(fromModule, true, dn.Deviation.TargetPath)
	if !ok {
		return yangerr.NewReference(yangerr.UnresolvedReference, dn.Pos, dn.Deviation.TargetPath,
			"deviation target %q does not resolve", pathString(dn.Deviation.TargetPath))
	}
	dn.Deviation.Target = target
	dn.Deviation.Status = schema.Resolved

	for _, devID := range dn.Deviation.Deviates {
		deviate := l.tree.Node(devID)
		if err := applyDeviate(l.tree, target, deviate); err != nil {
			return err
		}
		// a deviated-out node may not be the target of a further deviate
		// statement in the same deviation.
		if deviate.Deviate.Action == "not-supported" {
			break
		}
	}
	return nil
}

// applyDeviate mutates target according to one deviate statement's
// action: not-supported, add, delete, or replace.
func applyDeviate(t *schema.Tree, target schema.NodeID, deviate *schema.Node) error {
	d := deviate.Deviate
	tn := t.Node(target)

	switch d.Action {
	case "not-supported":
		t.RemoveChild(target)
		return nil

	case "add":
		return applyDeviateAdd(tn, d, deviate.Pos)

	case "delete":
		return applyDeviateDelete(tn, d, deviate.Pos)

	case "replace":
		return applyDeviateReplace(tn, d, deviate.Pos)

	default:
		return yangerr.NewStructural(yangerr.InvalidHolder, deviate.Pos,
			"unknown deviate action %q", d.Action)
	}
}

// applyDeviateAdd implements deviate add: must is cumulative. On a leaf or
// leaf-list, units and default may only be added if not already present,
// while config/mandatory/min-elements/max-elements overwrite any existing
// value; on a list, config/min-elements/max-elements overwrite likewise.
func applyDeviateAdd(tn *schema.Node, d *schema.DeviateInfo, pos yangerr.Position) error {
	tn.Must = append(tn.Must, d.Must...)

	switch tn.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		if d.HasUnits {
			if tn.Leaf.Units != "" {
				return yangerr.NewConstraint(yangerr.ConstraintViolation, pos, nil,
					"deviate add: units already present on %q", tn.Name)
			}
			tn.Leaf.Units = d.Units
		}
		if d.HasDefault {
			if tn.Leaf.HasDefault {
				return yangerr.NewConstraint(yangerr.ConstraintViolation, pos, nil,
					"deviate add: default already present on %q", tn.Name)
			}
			tn.Leaf.Default, tn.Leaf.HasDefault = d.Default, true
		}
		if d.HasConfig {
			tn.Leaf.Config, tn.Leaf.ConfigSet = d.Config, true
		}
		if d.HasMandatory {
			tn.Leaf.Mandatory = d.Mandatory
		}
		if d.HasMinElements {
			tn.Leaf.MinElements = d.MinElements
		}
		if d.HasMaxElements {
			tn.Leaf.MaxElements = d.MaxElements
		}
	case schema.KindList:
		if d.HasConfig {
			tn.List.Config, tn.List.ConfigSet = d.Config, true
		}
		if d.HasMinElements {
			tn.List.MinElements = d.MinElements
		}
		if d.HasMaxElements {
			tn.List.MaxElements = d.MaxElements
		}
	}
	return nil
}

// applyDeviateDelete implements deviate delete: on a leaf or leaf-list,
// units/default may only be deleted if present with the stated value.
// must entries equal to a stated one are removed, and a stated must that
// is absent is not an error; unique is not handled.
func applyDeviateDelete(tn *schema.Node, d *schema.DeviateInfo, pos yangerr.Position) error {
	if len(d.Must) > 0 {
		tn.Must = removeStrings(tn.Must, d.Must)
	}
	switch tn.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		if d.HasUnits {
			if tn.Leaf.Units != d.Units {
				return yangerr.NewConstraint(yangerr.ConstraintViolation, pos, nil,
					"deviate delete: units %q not present on %q", d.Units, tn.Name)
			}
			tn.Leaf.Units = ""
		}
		if d.HasDefault {
			if !tn.Leaf.HasDefault || tn.Leaf.Default != d.Default {
				return yangerr.NewConstraint(yangerr.ConstraintViolation, pos, nil,
					"deviate delete: default %q not present on %q", d.Default, tn.Name)
			}
			tn.Leaf.Default, tn.Leaf.HasDefault = "", false
		}
	}
	return nil
}

// applyDeviateReplace implements deviate replace on a leaf, leaf-list or
// list by overwriting each stated property; whether that property was
// already present on the target is not checked. Any other target kind is
// an error.
func applyDeviateReplace(tn *schema.Node, d *schema.DeviateInfo, pos yangerr.Position) error {
	switch tn.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		if d.HasUnits {
			tn.Leaf.Units = d.Units
		}
		if d.HasDefault {
			tn.Leaf.Default, tn.Leaf.HasDefault = d.Default, true
		}
		if d.HasConfig {
			tn.Leaf.Config, tn.Leaf.ConfigSet = d.Config, true
		}
		if d.HasMandatory {
			tn.Leaf.Mandatory = d.Mandatory
		}
		if d.HasMinElements {
			tn.Leaf.MinElements = d.MinElements
		}
		if d.HasMaxElements {
			tn.Leaf.MaxElements = d.MaxElements
		}
	case schema.KindList:
		if d.HasConfig {
			tn.List.Config, tn.List.ConfigSet = d.Config, true
		}
		if d.HasMinElements {
			tn.List.MinElements = d.MinElements
		}
		if d.HasMaxElements {
			tn.List.MaxElements = d.MaxElements
		}
	default:
		return yangerr.NewConstraint(yangerr.ConstraintViolation, pos, nil,
			"deviate replace: unsupported target kind %q", tn.Kind)
	}
	return nil
}

func removeStrings(from, remove []string) []string {
	out := from[:0:0]
	for _, s := range from {
		drop := false
		for _, r := range remove {
			if s == r {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, s)
		}
	}
	return out
}
