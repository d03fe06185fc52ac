// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package schema

import "github.com/danos/yang-compiler/ast"

// NodeID addresses a Node inside a Tree's arena. The zero value, NilNode,
// never addresses a real node. Every parent/sibling/back link in this
// package is a NodeID, never a pointer, so that the grouping<->uses and
// parent/child/sibling cycles inherent to a YANG schema tree never become
// Go reference cycles.
type NodeID int

const NilNode NodeID = -1

// Resolvable is the cross-reference resolution state machine attached to
// uses, type, augment, identityref, leafref, if-feature, base, import and
// include.
type Resolvable int

const (
	Unresolved Resolvable = iota
	IntraFileResolved
	Linked
	Resolved
)

func (r Resolvable) String() string {
	switch r {
	case IntraFileResolved:
		return "INTRA_FILE_RESOLVED"
	case Linked:
		return "LINKED"
	case Resolved:
		return "RESOLVED"
	default:
		return "UNRESOLVED"
	}
}

// SchemaId is the (name, namespace) pair that identifies a node among its
// parent's children.
type SchemaId struct {
	Name      string
	Namespace string
}

// Node is one element of a Tree's arena. It carries the attributes common
// to every kind plus links expressed as NodeIDs, plus exactly one
// populated capability record selected by Kind -- a tagged variant in
// place of a deep mixin interface.
type Node struct {
	ID   NodeID
	Kind Kind

	Name      string
	Namespace string

	Description string
	Reference   string
	Status      Status
	When        []string
	IfFeature   []string
	Must        []string

	Pos ast.Position

	Parent      NodeID
	FirstChild  NodeID
	LastChild   NodeID
	NextSibling NodeID
	PrevSibling NodeID

	// ChildIndex maps (name, namespace) -> child NodeID for this node's
	// immediate data-tree children. Populated incrementally by the
	// listener and finalized by the resolver's namespace & collision phase.
	ChildIndex map[SchemaId]NodeID

	// DefaultChild holds the resolved default case for a KindChoice node.
	DefaultChild NodeID

	// Capability records: exactly one is non-nil, selected by Kind.
	Leaf      *LeafInfo
	List      *ListInfo
	Choice    *ChoiceInfo
	Grouping  *GroupingInfo
	Uses      *UsesInfo
	Augment   *AugmentInfo
	Typedef   *TypedefInfo
	Identity  *IdentityInfo
	Feature   *FeatureInfo
	Module    *ModuleInfo
	Deviation *DeviationInfo
	Deviate   *DeviateInfo
	Extension *ExtensionInfo
}

// LeafInfo is the capability record for KindLeaf and KindLeafList.
type LeafInfo struct {
	Type        TypeRef
	Default     string
	HasDefault  bool
	Units       string
	Mandatory   bool
	Config      bool
	ConfigSet   bool
	MinElements int
	MaxElements int // 0 means unbounded
	OrderedBy   OrderedBy
	IsLeafList  bool
}

// TypeRef is an unresolved or resolved reference to a built-in or
// typedef'd type.
type TypeRef struct {
	Prefix     string
	Name       string
	Status     Resolvable
	Target     NodeID // resolved *Node of kind KindTypedef, once Resolved
	PathExpr   string // verbatim leafref path, not evaluated (Non-goal)
	BaseIdents []string
	Union      []TypeRef
}

// ListInfo is the capability record for KindList.
type ListInfo struct {
	Key         []string // ordered list of leaf names
	Unique      [][]string
	MinElements int
	MaxElements int
	Config      bool
	ConfigSet   bool
	OrderedBy   OrderedBy
}

// ChoiceInfo is the capability record for KindChoice.
type ChoiceInfo struct {
	DefaultCase string
	Mandatory   bool
}

// GroupingInfo is the capability record for KindGrouping: it holds a
// template subtree that is never directly present in the resolved data
// tree, only ever deep-cloned at uses sites.
type GroupingInfo struct {
	// Instantiated counts successful clones, useful for diagnostics.
	Instantiated int
}

// RefineDirective is one `refine` override applied during uses expansion.
type RefineDirective struct {
	Path        []string
	Description string
	HasDesc     bool
	Reference   string
	HasRef      bool
	Default     string
	HasDefault  bool
	Config      bool
	HasConfig   bool
	Mandatory   bool
	HasMandat   bool
	MinElements int
	HasMin      bool
	MaxElements int
	HasMax      bool
	Must        []string
	Pos         ast.Position
}

// UsesInfo is the capability record for KindUses.
type UsesInfo struct {
	GroupingPrefix string
	GroupingName   string
	Status         Resolvable
	Target         NodeID // resolved *Node of kind KindGrouping
	Refines        []RefineDirective
	InlineAugments []NodeID // KindAugment children spliced after expansion
}

// AugmentInfo is the capability record for KindAugment.
type AugmentInfo struct {
	TargetPath []string // absolute (leading "/") or descendant path
	Absolute   bool
	Status     Resolvable
	Target     NodeID // resolved target node, once Resolved
}

// TypedefInfo is the capability record for KindTypedef.
type TypedefInfo struct {
	BaseType       string // built-in type name, e.g. "string", "uint32"
	BasePrefix     string
	BaseStatus     Resolvable
	BaseTarget     NodeID
	Range          string
	Length         string
	Patterns       []string
	Enums          []EnumValue
	Bits           []BitValue
	FractionDigits int
	Union          []TypeRef
	Default        string
	HasDefault     bool
}

type EnumValue struct {
	Name  string
	Value int
	HasValue bool
}

type BitValue struct {
	Name     string
	Position int
	HasPos   bool
}

// IdentityInfo is the capability record for KindIdentity: forms a DAG of
// identities.
type IdentityInfo struct {
	BasePrefix string
	BaseName   string
	HasBase    bool
	BaseStatus Resolvable
	BaseTarget NodeID
}

// FeatureInfo is the capability record for KindFeature.
type FeatureInfo struct {
	IfFeatureExpr []string // boolean expressions over other features
}

// ModuleImport records one `import` statement.
type ModuleImport struct {
	ModuleName   string
	Prefix       string
	Revision     string // empty means "latest"
	Status       Resolvable
	Target       NodeID // resolved KindModule root
	Pos          ast.Position
}

// ModuleInclude records one `include` statement.
type ModuleInclude struct {
	SubmoduleName string
	Revision      string
	Status        Resolvable
	Target        NodeID
	Pos           ast.Position
}

// ModuleInfo is the capability record for KindModule and KindSubmodule.
type ModuleInfo struct {
	IsSubmodule  bool
	Namespace    string
	Prefix       string
	YangVersion  string
	Revision     string // most recent declared revision date
	Revisions    []string
	BelongsTo    string // submodule only: name of the parent module
	BelongsToPfx string
	Imports      []ModuleImport
	Includes     []ModuleInclude
	Organization string
	Contact      string
}

// DeviationInfo is the capability record for KindDeviation: a module's
// override of another module's schema node.
type DeviationInfo struct {
	TargetPath []string
	Status     Resolvable
	Target     NodeID
	Deviates   []NodeID // KindDeviate children
}

// DeviateInfo is the capability record for KindDeviate: the action
// ("not-supported"|"add"|"delete"|"replace") and the subset of
// deviatable properties this compiler represents natively (config,
// mandatory, default, units, min/max-elements, must).
type DeviateInfo struct {
	Action string

	HasConfig bool
	Config    bool

	HasMandatory bool
	Mandatory    bool

	HasDefault bool
	Default    string

	HasUnits bool
	Units    string

	HasMinElements bool
	MinElements    int

	HasMaxElements bool
	MaxElements    int

	Must []string
}

// ExtensionInfo is the capability record for KindExtension and for any
// unrecognized (prefixed) statement captured generically, grounded on the
// teacher's NodeType.IsExtensionNode handling of NodeUnknown.
type ExtensionInfo struct {
	ArgumentName string
	HasArgument  bool
	YinElement   bool
}
