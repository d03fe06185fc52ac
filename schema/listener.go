// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"strconv"
	"strings"

	"github.com/danos/yang-compiler/ast"
	"github.com/danos/yang-compiler/yangerr"
)

// FromStatement is the tree-walk listener: it consumes the ast.Statement
// concrete syntax tree produced by ast.ParseFile and lowers it into an
// unresolved schema.Tree. There is no generated parser to hang callbacks
// off; the walk is explicit recursion over ast.Statement.Children. The
// structuralKind map below selects the keywords that create nodes, and
// Kind.CanHoldDataDef decides which holders accept data-definition
// children. Substatement cardinality is not checked: a substatement that
// YANG allows at most once is accepted when it is repeated.
func FromStatement(root *ast.Statement) (*Tree, error) {
	t := NewTree()
	id, err := BuildInto(t, root)
	if err != nil {
		return nil, err
	}
	t.Root = id
	t.Roots = append(t.Roots, id)
	return t, nil
}

// BuildInto lowers a single module/submodule's CST into arena t, allowing
// a resolver to gather several modules into one shared arena before
// cross-module resolution begins (resolve.ResolveSet does exactly this).
func BuildInto(t *Tree, root *ast.Statement) (NodeID, error) {
	if root.Keyword != "module" && root.Keyword != "submodule" {
		return NilNode, yangerr.NewStructural(yangerr.InvalidHolder, root.Pos,
			"expected top-level 'module' or 'submodule', found %q", root.Keyword)
	}
	return buildModule(t, root)
}

// structuralKind maps a bare (unprefixed) keyword to the Kind of node it
// introduces. Keywords not present here are either attribute-only
// (handled by applyAttribute) or, if prefixed, captured as extensions.
var structuralKind = map[string]Kind{
	"module":       KindModule,
	"submodule":    KindSubmodule,
	"container":    KindContainer,
	"list":         KindList,
	"choice":       KindChoice,
	"case":         KindCase,
	"grouping":     KindGrouping,
	"augment":      KindAugment,
	"input":        KindInput,
	"output":       KindOutput,
	"notification": KindNotification,
	"rpc":          KindRpc,
	"action":       KindAction,
	"leaf":         KindLeaf,
	"leaf-list":    KindLeafList,
	"anyxml":       KindAnyxml,
	"anydata":      KindAnydata,
	"typedef":      KindTypedef,
	"identity":     KindIdentity,
	"feature":      KindFeature,
	"uses":         KindUses,
	"import":       KindImport,
	"include":      KindInclude,
	"deviation":    KindDeviation,
	"deviate":      KindDeviate,
	"extension":    KindExtension,
}

// buildChild dispatches on a child statement's keyword, either creating and
// recursing into a structural node (appending it to parent) or mutating
// parent's attributes/capability record in place.
func buildChild(t *Tree, parent NodeID, stmt *ast.Statement) error {
	if stmt.Prefix != "" {
		return appendExtension(t, parent, stmt)
	}

	if kind, ok := structuralKind[stmt.Keyword]; ok {
		childID, err := buildStructural(t, kind, stmt)
		if err != nil {
			return err
		}
		if childID == NilNode {
			return nil
		}
		pn := t.Node(parent)
		if !pn.Kind.CanHoldDataDef() && kind.IsDataDef() {
			return yangerr.NewStructural(yangerr.InvalidHolder, stmt.Pos,
				"'%s' may not contain a '%s' statement", pn.Kind, stmt.Keyword)
		}
		t.AppendChild(parent, childID)
		if kind.IsDataOrCaseNode() {
			// a case's children share the enclosing choice's scope, so they
			// are indexed once the case itself has been attached.
			if pn.Kind == KindCase && pn.Parent == NilNode {
				return nil
			}
			cn := t.Node(childID)
			if err := t.IndexChild(parent, childID, cn.Name, cn.Namespace); err != nil {
				return err
			}
			if kind == KindCase {
				for _, gc := range t.Children(childID) {
					// a child named like its own case keeps the case's entry.
					if gn := t.Node(gc); gn.Kind.IsDataOrCaseNode() && t.DetectCollidingChild(childID, gn.Name, gn.Namespace) != childID {
						if err := t.IndexChild(childID, gc, gn.Name, gn.Namespace); err != nil {
							return err
						}
					}
				}
			}
		}
		return nil
	}

	return applyAttribute(t, parent, stmt)
}

func buildStructural(t *Tree, kind Kind, stmt *ast.Statement) (NodeID, error) {
	switch kind {
	case KindModule, KindSubmodule:
		return buildModule(t, stmt)
	case KindContainer, KindGrouping, KindInput, KindOutput, KindNotification,
		KindRpc, KindAction, KindCase:
		return buildContainerLike(t, kind, stmt)
	case KindList:
		return buildList(t, stmt)
	case KindChoice:
		return buildChoice(t, stmt)
	case KindLeaf:
		return buildLeaf(t, stmt, false)
	case KindLeafList:
		return buildLeaf(t, stmt, true)
	case KindAnyxml, KindAnydata:
		return buildSimple(t, kind, stmt)
	case KindUses:
		return buildUses(t, stmt)
	case KindAugment:
		return buildAugment(t, stmt)
	case KindTypedef:
		return buildTypedef(t, stmt)
	case KindIdentity:
		return buildIdentity(t, stmt)
	case KindFeature:
		return buildFeature(t, stmt)
	case KindImport, KindInclude:
		// handled directly by buildModule; a bare import/include outside a
		// module is a holder violation.
		return NilNode, yangerr.NewStructural(yangerr.InvalidHolder, stmt.Pos,
			"'%s' may only appear directly inside 'module' or 'submodule'", stmt.Keyword)
	case KindDeviation:
		return buildDeviation(t, stmt)
	case KindDeviate:
		return buildDeviate(t, stmt)
	default:
		return NilNode, yangerr.NewInternal(stmt.Pos, "unhandled structural kind %s", kind)
	}
}

func newNode(t *Tree, kind Kind, stmt *ast.Statement) NodeID {
	id := t.New(kind)
	n := t.Node(id)
	n.Pos = stmt.Pos
	if stmt.HasArgument {
		n.Name = stmt.Argument
	}
	return id
}

func commonAttribute(t *Tree, n *Node, stmt *ast.Statement) (bool, error) {
	switch stmt.Keyword {
	case "description":
		n.Description = stmt.Argument
	case "reference":
		n.Reference = stmt.Argument
	case "status":
		s, ok := StatusFromString(stmt.Argument)
		if !ok {
			return true, yangerr.NewStructural(yangerr.InvalidHolder, stmt.Pos,
				"invalid status %q", stmt.Argument)
		}
		n.Status = s
	case "when":
		n.When = append(n.When, stmt.Argument)
	case "if-feature":
		n.IfFeature = append(n.IfFeature, stmt.Argument)
	case "must":
		n.Must = append(n.Must, stmt.Argument)
	default:
		return false, nil
	}
	return true, nil
}

func appendExtension(t *Tree, parent NodeID, stmt *ast.Statement) error {
	id := newNode(t, KindExtension, stmt)
	n := t.Node(id)
	n.Name = stmt.Prefix + ":" + stmt.Keyword
	n.Extension = &ExtensionInfo{ArgumentName: stmt.Argument, HasArgument: stmt.HasArgument}
	for _, c := range stmt.Children {
		if err := buildChild(t, id, c); err != nil {
			return err
		}
	}
	t.AppendChild(parent, id)
	return nil
}

// ---- module / submodule ----------------------------------------------

func buildModule(t *Tree, stmt *ast.Statement) (NodeID, error) {
	kind := KindModule
	if stmt.Keyword == "submodule" {
		kind = KindSubmodule
	}
	id := newNode(t, kind, stmt)
	n := t.Node(id)
	n.Module = &ModuleInfo{IsSubmodule: kind == KindSubmodule}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "namespace":
			n.Namespace = c.Argument
			n.Module.Namespace = c.Argument
		case "prefix":
			n.Module.Prefix = c.Argument
		case "yang-version":
			n.Module.YangVersion = c.Argument
		case "belongs-to":
			n.Module.BelongsTo = c.Argument
			if pfx := c.Find("prefix"); pfx != nil {
				n.Module.BelongsToPfx = pfx.Argument
			}
		case "organization":
			n.Module.Organization = c.Argument
		case "contact":
			n.Module.Contact = c.Argument
		case "revision":
			if err := validDate(c.Argument); err != nil {
				return NilNode, yangerr.NewDate(yangerr.MalformedDate, c.Pos, "%s", err)
			}
			n.Module.Revisions = append(n.Module.Revisions, c.Argument)
			if n.Module.Revision == "" || c.Argument > n.Module.Revision {
				n.Module.Revision = c.Argument
			}
		case "import":
			imp := ModuleImport{ModuleName: c.Argument, Pos: c.Pos}
			if p := c.Find("prefix"); p != nil {
				imp.Prefix = p.Argument
			}
			if r := c.Find("revision-date"); r != nil {
				imp.Revision = r.Argument
			}
			n.Module.Imports = append(n.Module.Imports, imp)
		case "include":
			inc := ModuleInclude{SubmoduleName: c.Argument, Pos: c.Pos}
			if r := c.Find("revision-date"); r != nil {
				inc.Revision = r.Argument
			}
			n.Module.Includes = append(n.Module.Includes, inc)
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
				continue
			}
			if err := buildChild(t, id, c); err != nil {
				return NilNode, err
			}
		}
	}

	if n.Module.Namespace == "" && kind == KindModule {
		return NilNode, yangerr.NewStructural(yangerr.MissingHolder, stmt.Pos,
			"module %q is missing a 'namespace' statement", n.Name)
	}
	return id, nil
}

// ---- container-like (container, grouping, input, output, notification,
//      rpc, action, case) ------------------------------------------------

func buildContainerLike(t *Tree, kind Kind, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, kind, stmt)
	n := t.Node(id)
	if kind == KindGrouping {
		n.Grouping = &GroupingInfo{}
	}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "presence":
			// presence has no further structural meaning for the resolver
			// beyond the holder check; only its absence/presence matters
			// downstream and that is carried by the source CST already.
			if kind != KindContainer {
				return NilNode, yangerr.NewStructural(yangerr.InvalidHolder, c.Pos,
					"'presence' may only appear inside 'container'")
			}
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
				continue
			}
			if err := buildChild(t, id, c); err != nil {
				return NilNode, err
			}
		}
	}
	return id, nil
}

func buildSimple(t *Tree, kind Kind, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, kind, stmt)
	n := t.Node(id)
	for _, c := range stmt.Children {
		if ok, err := commonAttribute(t, n, c); ok {
			if err != nil {
				return NilNode, err
			}
			continue
		}
	}
	return id, nil
}

// ---- list ---------------------------------------------------------------

func buildList(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindList, stmt)
	n := t.Node(id)
	n.List = &ListInfo{Config: true, MaxElements: 0}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "key":
			keys := strings.Fields(c.Argument)
			seen := make(map[string]bool, len(keys))
			for _, k := range keys {
				if seen[k] {
					return NilNode, yangerr.NewConstraint(yangerr.KeyRule, c.Pos, nil,
						"key leaf %q repeated in 'key' statement of list %q", k, n.Name)
				}
				seen[k] = true
			}
			n.List.Key = keys
		case "unique":
			n.List.Unique = append(n.List.Unique, strings.Fields(c.Argument))
		case "min-elements":
			v, err := strconv.Atoi(c.Argument)
			if err != nil {
				return NilNode, yangerr.NewStructural(yangerr.InvalidHolder, c.Pos, "invalid min-elements %q", c.Argument)
			}
			n.List.MinElements = v
		case "max-elements":
			if c.Argument != "unbounded" {
				v, err := strconv.Atoi(c.Argument)
				if err != nil {
					return NilNode, yangerr.NewStructural(yangerr.InvalidHolder, c.Pos, "invalid max-elements %q", c.Argument)
				}
				n.List.MaxElements = v
			}
		case "ordered-by":
			if c.Argument == "user" {
				n.List.OrderedBy = OrderedByUser
			}
		case "config":
			n.List.Config = c.Argument == "true"
			n.List.ConfigSet = true
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
				continue
			}
			if err := buildChild(t, id, c); err != nil {
				return NilNode, err
			}
		}
	}
	return id, nil
}

// ---- choice / case --------------------------------------------------------

func buildChoice(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindChoice, stmt)
	n := t.Node(id)
	n.Choice = &ChoiceInfo{}
	n.DefaultChild = NilNode

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "default":
			n.Choice.DefaultCase = c.Argument
		case "mandatory":
			n.Choice.Mandatory = c.Argument == "true"
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
				continue
			}
			if err := buildChild(t, id, c); err != nil {
				return NilNode, err
			}
		}
	}

	if n.Choice.Mandatory && n.Choice.DefaultCase != "" {
		return NilNode, yangerr.NewConstraint(yangerr.DefaultCaseMismatch, stmt.Pos, nil,
			"choice %q is mandatory and must not declare a default case", n.Name)
	}
	if n.Choice.DefaultCase != "" {
		if t.Node(id).ChildIndex != nil {
			for key, cid := range t.Node(id).ChildIndex {
				// a shorthand case (a data-def statement directly under the
				// choice) is itself a valid 'default' target, not just an
				// explicit 'case'.
				if key.Name == n.Choice.DefaultCase {
					n.DefaultChild = cid
				}
			}
		}
		if n.DefaultChild == NilNode {
			return NilNode, yangerr.NewConstraint(yangerr.DefaultCaseMismatch, stmt.Pos, nil,
				"choice %q default %q does not name a declared case", n.Name, n.Choice.DefaultCase)
		}
	}
	return id, nil
}

// ---- leaf / leaf-list -----------------------------------------------------

func buildLeaf(t *Tree, stmt *ast.Statement, isLeafList bool) (NodeID, error) {
	kind := KindLeaf
	if isLeafList {
		kind = KindLeafList
	}
	id := newNode(t, kind, stmt)
	n := t.Node(id)
	n.Leaf = &LeafInfo{Config: true, IsLeafList: isLeafList}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "type":
			n.Leaf.Type = buildTypeRef(c)
		case "default":
			n.Leaf.Default = c.Argument
			n.Leaf.HasDefault = true
		case "units":
			n.Leaf.Units = c.Argument
		case "mandatory":
			n.Leaf.Mandatory = c.Argument == "true"
		case "config":
			n.Leaf.Config = c.Argument == "true"
			n.Leaf.ConfigSet = true
		case "min-elements":
			v, _ := strconv.Atoi(c.Argument)
			n.Leaf.MinElements = v
		case "max-elements":
			if c.Argument != "unbounded" {
				v, _ := strconv.Atoi(c.Argument)
				n.Leaf.MaxElements = v
			}
		case "ordered-by":
			if c.Argument == "user" {
				n.Leaf.OrderedBy = OrderedByUser
			}
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
				continue
			}
		}
	}

	if n.Leaf.Mandatory && n.Leaf.HasDefault {
		return NilNode, yangerr.NewConstraint(yangerr.KeyRule, stmt.Pos, nil,
			"leaf %q may not be both mandatory and carry a default", n.Name)
	}
	return id, nil
}

// buildTypeRef reads a `type` statement's prefix:name argument into a
// TypeRef, together with its `path`, `base` and nested `type` (union
// member) substatements. Other restriction substatements (range, length,
// pattern, enum, bit, ...) are not captured; leaf type resolution happens
// post-parse.
func buildTypeRef(stmt *ast.Statement) TypeRef {
	prefix, name := splitQName(stmt.Argument)
	ref := TypeRef{Prefix: prefix, Name: name}
	for _, c := range stmt.Children {
		switch c.Keyword {
		case "path":
			ref.PathExpr = c.Argument
		case "base":
			ref.BaseIdents = append(ref.BaseIdents, c.Argument)
		case "type":
			ref.Union = append(ref.Union, buildTypeRef(c))
		}
	}
	return ref
}

func splitQName(s string) (prefix, name string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// ---- uses / refine --------------------------------------------------------

func buildUses(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindUses, stmt)
	n := t.Node(id)
	prefix, name := splitQName(stmt.Argument)
	n.Uses = &UsesInfo{GroupingPrefix: prefix, GroupingName: name, Status: Unresolved, Target: NilNode}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "refine":
			n.Uses.Refines = append(n.Uses.Refines, buildRefine(c))
		case "augment":
			augID, err := buildAugment(t, c)
			if err != nil {
				return NilNode, err
			}
			n.Uses.InlineAugments = append(n.Uses.InlineAugments, augID)
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
				continue
			}
		}
	}
	return id, nil
}

func buildRefine(stmt *ast.Statement) RefineDirective {
	r := RefineDirective{Path: strings.Split(stmt.Argument, "/"), Pos: stmt.Pos}
	for _, c := range stmt.Children {
		switch c.Keyword {
		case "description":
			r.Description, r.HasDesc = c.Argument, true
		case "reference":
			r.Reference, r.HasRef = c.Argument, true
		case "default":
			r.Default, r.HasDefault = c.Argument, true
		case "config":
			r.Config, r.HasConfig = c.Argument == "true", true
		case "mandatory":
			r.Mandatory, r.HasMandat = c.Argument == "true", true
		case "min-elements":
			v, _ := strconv.Atoi(c.Argument)
			r.MinElements, r.HasMin = v, true
		case "max-elements":
			v, _ := strconv.Atoi(c.Argument)
			r.MaxElements, r.HasMax = v, true
		case "must":
			r.Must = append(r.Must, c.Argument)
		}
	}
	return r
}

// ---- augment --------------------------------------------------------------

func buildAugment(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindAugment, stmt)
	n := t.Node(id)
	absolute := strings.HasPrefix(stmt.Argument, "/")
	path := strings.Split(strings.TrimPrefix(stmt.Argument, "/"), "/")
	n.Augment = &AugmentInfo{TargetPath: path, Absolute: absolute, Status: Unresolved, Target: NilNode}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "when":
			n.When = append(n.When, c.Argument)
		case "if-feature":
			n.IfFeature = append(n.IfFeature, c.Argument)
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
				continue
			}
			childKind, isStructural := structuralKind[c.Keyword]
			if !isStructural || !childKind.IsDataOrCaseNode() {
				return NilNode, yangerr.NewStructural(yangerr.InvalidHolder, c.Pos,
					"'augment' may not contain a '%s' statement", c.Keyword)
			}
			childID, err := buildStructural(t, childKind, c)
			if err != nil {
				return NilNode, err
			}
			t.AppendChild(id, childID)
		}
	}
	return id, nil
}

// ---- typedef / type restrictions ------------------------------------------

func buildTypedef(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindTypedef, stmt)
	n := t.Node(id)
	n.Typedef = &TypedefInfo{}

	typeStmt := stmt.Find("type")
	if typeStmt == nil {
		return NilNode, yangerr.NewStructural(yangerr.MissingHolder, stmt.Pos,
			"typedef %q is missing a 'type' statement", n.Name)
	}
	n.Typedef.BasePrefix, n.Typedef.BaseType = splitQName(typeStmt.Argument)

	for _, c := range typeStmt.Children {
		switch c.Keyword {
		case "range":
			n.Typedef.Range = c.Argument
		case "length":
			n.Typedef.Length = c.Argument
		case "pattern":
			n.Typedef.Patterns = append(n.Typedef.Patterns, c.Argument)
		case "fraction-digits":
			v, _ := strconv.Atoi(c.Argument)
			n.Typedef.FractionDigits = v
		case "enum":
			ev := EnumValue{Name: c.Argument}
			if v := c.Find("value"); v != nil {
				iv, _ := strconv.Atoi(v.Argument)
				ev.Value, ev.HasValue = iv, true
			}
			n.Typedef.Enums = append(n.Typedef.Enums, ev)
		case "bit":
			bv := BitValue{Name: c.Argument}
			if p := c.Find("position"); p != nil {
				iv, _ := strconv.Atoi(p.Argument)
				bv.Position, bv.HasPos = iv, true
			}
			n.Typedef.Bits = append(n.Typedef.Bits, bv)
		case "type":
			n.Typedef.Union = append(n.Typedef.Union, buildTypeRef(c))
		}
	}

	for _, c := range stmt.Children {
		if c.Keyword == "type" {
			continue
		}
		switch c.Keyword {
		case "default":
			n.Typedef.Default = c.Argument
			n.Typedef.HasDefault = true
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
			}
		}
	}
	return id, nil
}

// ---- identity / feature -----------------------------------------------------

func buildIdentity(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindIdentity, stmt)
	n := t.Node(id)
	n.Identity = &IdentityInfo{}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "base":
			n.Identity.BasePrefix, n.Identity.BaseName = splitQName(c.Argument)
			n.Identity.HasBase = true
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
			}
		}
	}
	return id, nil
}

func buildFeature(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindFeature, stmt)
	n := t.Node(id)
	n.Feature = &FeatureInfo{}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "if-feature":
			n.Feature.IfFeatureExpr = append(n.Feature.IfFeatureExpr, c.Argument)
		default:
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
			}
		}
	}
	return id, nil
}

// ---- deviation / deviate ----------------------------------------------------

func buildDeviation(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindDeviation, stmt)
	n := t.Node(id)
	n.Deviation = &DeviationInfo{
		TargetPath: strings.Split(strings.TrimPrefix(stmt.Argument, "/"), "/"),
		Status:     Unresolved,
		Target:     NilNode,
	}

	for _, c := range stmt.Children {
		if c.Keyword != "deviate" {
			if ok, err := commonAttribute(t, n, c); ok {
				if err != nil {
					return NilNode, err
				}
			}
			continue
		}
		devID, err := buildDeviate(t, c)
		if err != nil {
			return NilNode, err
		}
		n.Deviation.Deviates = append(n.Deviation.Deviates, devID)
		t.AppendChild(id, devID)
	}
	return id, nil
}

// buildDeviate builds one `deviate` statement: the bare argument selects
// the action (not-supported/add/delete/replace). The substatements present
// are captured without checking them against the action (`unique` and
// `type` are dropped); the resolver applies the ones its action handles
// and ignores the rest.
func buildDeviate(t *Tree, stmt *ast.Statement) (NodeID, error) {
	id := newNode(t, KindDeviate, stmt)
	n := t.Node(id)
	n.Deviate = &DeviateInfo{Action: stmt.Argument}

	for _, c := range stmt.Children {
		switch c.Keyword {
		case "config":
			n.Deviate.Config = c.Argument == "true"
			n.Deviate.HasConfig = true
		case "mandatory":
			n.Deviate.Mandatory = c.Argument == "true"
			n.Deviate.HasMandatory = true
		case "default":
			n.Deviate.Default = c.Argument
			n.Deviate.HasDefault = true
		case "units":
			n.Deviate.Units = c.Argument
			n.Deviate.HasUnits = true
		case "min-elements":
			v, err := strconv.Atoi(c.Argument)
			if err != nil {
				return NilNode, yangerr.NewStructural(yangerr.InvalidHolder, c.Pos, "invalid min-elements %q", c.Argument)
			}
			n.Deviate.MinElements = v
			n.Deviate.HasMinElements = true
		case "max-elements":
			if c.Argument != "unbounded" {
				v, err := strconv.Atoi(c.Argument)
				if err != nil {
					return NilNode, yangerr.NewStructural(yangerr.InvalidHolder, c.Pos, "invalid max-elements %q", c.Argument)
				}
				n.Deviate.MaxElements = v
			}
			n.Deviate.HasMaxElements = true
		case "must":
			n.Deviate.Must = append(n.Deviate.Must, c.Argument)
		case "unique":
			continue
		default:
			if ok, err := commonAttribute(t, n, c); ok && err != nil {
				return NilNode, err
			}
		}
	}
	return id, nil
}

func applyAttribute(t *Tree, parent NodeID, stmt *ast.Statement) error {
	n := t.Node(parent)
	if ok, err := commonAttribute(t, n, stmt); ok {
		return err
	}
	return yangerr.NewStructural(yangerr.InvalidHolder, stmt.Pos,
		"'%s' is not a valid substatement of '%s'", stmt.Keyword, n.Kind)
}
