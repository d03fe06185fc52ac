// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/danos/yang-compiler/schema"
	"github.com/danos/yang-compiler/yangerr"
	"github.com/danos/yang-compiler/yangutils"
)

var builtinTypes = map[string]bool{
	"string": true, "boolean": true, "int8": true, "int16": true, "int32": true,
	"int64": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"decimal64": true, "enumeration": true, "bits": true, "binary": true,
	"leafref": true, "identityref": true, "empty": true, "union": true,
	"instance-identifier": true,
}

// resolveDefinitions is phase 4: for typedef base types, leaf/leaf-list
// type references and identity bases, look up the named definition via
// prefix + local name. Unresolved prefixes fail with MISSING_IMPORT;
// unknown names with UNRESOLVED_REFERENCE. if-feature references are
// resolved the same way.
func (l *linker) resolveDefinitions() error {
	for _, name := range l.moduleOrder {
		moduleID := l.tree.ModuleByName(name)
		if moduleID == schema.NilNode {
			continue
		}
		if err := l.walkResolveDefinitions(moduleID, moduleID); err != nil {
			return err
		}
	}
	return nil
}

func (l *linker) walkResolveDefinitions(id, moduleID schema.NodeID) error {
	n := l.tree.Node(id)

	switch n.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		if err := l.resolveTypeRef(id, moduleID, &n.Leaf.Type); err != nil {
			return err
		}
	case schema.KindTypedef:
		if err := l.resolveTypedefBase(id, moduleID); err != nil {
			return err
		}
		if err := validateDecimal64Default(n); err != nil {
			return err
		}
	case schema.KindIdentity:
		if n.Identity.HasBase {
			target, ok := l.lookupSymbol(id, moduleID, schema.KindIdentity, n.Identity.BasePrefix, n.Identity.BaseName)
			if !ok {
				return l.unresolvedRef(n, n.Identity.BasePrefix, n.Identity.BaseName, "base identity")
			}
			n.Identity.BaseTarget = target
			n.Identity.BaseStatus = schema.Resolved
		}
	}

	if len(n.IfFeature) > 0 {
		for _, expr := range n.IfFeature {
			if err := l.checkFeatureExpr(id, moduleID, expr); err != nil {
				return err
			}
		}
	}

	for _, c := range l.tree.Children(id) {
		if err := l.walkResolveDefinitions(c, moduleID); err != nil {
			return err
		}
	}
	return nil
}

func (l *linker) resolveTypeRef(from, moduleID schema.NodeID, ref *schema.TypeRef) error {
	if ref.Prefix == "" && builtinTypes[ref.Name] {
		ref.Status = schema.Resolved
		for i := range ref.Union {
			if err := l.resolveTypeRef(from, moduleID, &ref.Union[i]); err != nil {
				return err
			}
		}
		return nil
	}
	target, ok := l.lookupSymbol(from, moduleID, schema.KindTypedef, ref.Prefix, ref.Name)
	if !ok {
		return l.unresolvedRef(l.tree.Node(from), ref.Prefix, ref.Name, "type")
	}
	ref.Target = target
	ref.Status = schema.Resolved
	return nil
}

func (l *linker) resolveTypedefBase(id, moduleID schema.NodeID) error {
	n := l.tree.Node(id)
	td := n.Typedef
	if td.BasePrefix == "" && builtinTypes[td.BaseType] {
		td.BaseStatus = schema.Resolved
		for i := range td.Union {
			if err := l.resolveTypeRef(id, moduleID, &td.Union[i]); err != nil {
				return err
			}
		}
		return nil
	}
	target, ok := l.lookupSymbol(id, moduleID, schema.KindTypedef, td.BasePrefix, td.BaseType)
	if !ok {
		return l.unresolvedRef(n, td.BasePrefix, td.BaseType, "typedef base type")
	}
	td.BaseTarget = target
	td.BaseStatus = schema.Resolved
	return nil
}

// validateDecimal64Default checks a typedef's default text against its own
// declared fraction-digits, using yangutils.ValidateDecimal64String (RFC
// 6020 §9.3.4's decimal64 lexical rules), for a typedef that bases
// directly on the decimal64 built-in. A typedef derived from another
// typedef inherits fraction-digits and is validated when that ancestor's
// own default (if any) was declared, so this only fires at the typedef
// that actually carries fraction-digits.
func validateDecimal64Default(n *schema.Node) error {
	td := n.Typedef
	if td.BasePrefix != "" || td.BaseType != "decimal64" || td.FractionDigits == 0 || !td.HasDefault {
		return nil
	}
	if err := yangutils.ValidateDecimal64String(td.Default, td.FractionDigits); err != nil {
		return yangerr.NewConstraint(yangerr.ConstraintViolation, n.Pos, nil,
			"typedef %q: default %q: %s", n.Name, td.Default, err)
	}
	return nil
}

// checkFeatureExpr validates that every feature name referenced by a
// (possibly and/or/not/parenthesized) if-feature expression resolves to a
// declared feature; boolean evaluation of feature activation is left to
// the runtime, as is XPath for when/must.
func (l *linker) checkFeatureExpr(from, moduleID schema.NodeID, expr string) error {
	for _, tok := range tokenizeFeatureExpr(expr) {
		prefix, name := tok.prefix, tok.name
		if _, ok := l.lookupSymbol(from, moduleID, schema.KindFeature, prefix, name); !ok {
			return l.unresolvedRef(l.tree.Node(from), prefix, name, "feature")
		}
	}
	return nil
}

func (l *linker) unresolvedRef(n *schema.Node, prefix, name, what string) error {
	if prefix != "" {
		if _, ok := l.resolvePrefix(l.tree.NearestModule(n.Parent), prefix); !ok {
			return yangerr.NewReference(yangerr.MissingImport, n.Pos, nil,
				"%s reference %q: prefix %q is not bound by an import", what, qname(prefix, name), prefix)
		}
	}
	return yangerr.NewReference(yangerr.UnresolvedReference, n.Pos, nil,
		"%s reference %q does not resolve to a declared %s", what, qname(prefix, name), what)
}
