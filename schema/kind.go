// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package schema is the typed node data model: tagged node variants
// addressed by stable arena indices rather than a pointer/mixin Node
// hierarchy.
package schema

// Kind tags every schema.Node with its statement kind. Kind has no
// configd/opd extension members -- those extension families are a
// deployment-specific dialect, captured generically instead (see
// ExtensionInfo).
type Kind int

const (
	KindUnknown Kind = iota

	// Containers of schema.
	KindModule
	KindSubmodule
	KindContainer
	KindList
	KindChoice
	KindCase
	KindGrouping
	KindAugment
	KindInput
	KindOutput
	KindNotification
	KindRpc
	KindAction

	// Terminal data.
	KindLeaf
	KindLeafList
	KindAnyxml
	KindAnydata

	// Definitions referenced by name.
	KindTypedef
	KindIdentity
	KindFeature

	// Reference placeholders, present pre-resolution only.
	KindUses
	KindType
	KindImport
	KindInclude

	// Deviations and extensions.
	KindDeviation
	KindDeviate
	KindExtension

	kindIndexSize // must be last; not a valid Kind
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindModule:       "module",
	KindSubmodule:    "submodule",
	KindContainer:    "container",
	KindList:         "list",
	KindChoice:       "choice",
	KindCase:         "case",
	KindGrouping:     "grouping",
	KindAugment:      "augment",
	KindInput:        "input",
	KindOutput:       "output",
	KindNotification: "notification",
	KindRpc:          "rpc",
	KindAction:       "action",
	KindLeaf:         "leaf",
	KindLeafList:     "leaf-list",
	KindAnyxml:       "anyxml",
	KindAnydata:      "anydata",
	KindTypedef:      "typedef",
	KindIdentity:     "identity",
	KindFeature:      "feature",
	KindUses:         "uses",
	KindType:         "type",
	KindImport:       "import",
	KindInclude:      "include",
	KindDeviation:    "deviation",
	KindDeviate:      "deviate",
	KindExtension:    "extension",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) || kindNames[k] == "" {
		return "unknown"
	}
	return kindNames[k]
}

// IsDataDef reports whether k is one of the data-tree node kinds that can
// appear as an ordinary child of a container/list/case.
func (k Kind) IsDataDef() bool {
	switch k {
	case KindContainer, KindList, KindLeaf, KindLeafList,
		KindChoice, KindUses, KindAnyxml, KindAnydata:
		return true
	}
	return false
}

// IsDataOrCaseNode extends IsDataDef with KindCase.
func (k Kind) IsDataOrCaseNode() bool {
	return k.IsDataDef() || k == KindCase
}

// CanHoldDataDef reports whether k is a kind whose children may include
// ordinary data-definition statements. KindChoice is included for RFC
// 7950 7.9.2 shorthand cases: a data-def statement directly under a
// choice is an implicit single-statement case, not an error.
func (k Kind) CanHoldDataDef() bool {
	switch k {
	case KindModule, KindSubmodule, KindContainer, KindList, KindCase,
		KindChoice, KindGrouping, KindAugment, KindInput, KindOutput,
		KindNotification, KindAction:
		return true
	}
	return false
}

// TypeRestriction tags the capability kinds a typedef's base type may
// carry: range, length, pattern, enum, bit, path, fraction-digits and
// require-instance.
type TypeRestriction int

const (
	RestrictNone TypeRestriction = iota
	RestrictRange
	RestrictLength
	RestrictPattern
	RestrictEnum
	RestrictBit
	RestrictPath
	RestrictFractionDigits
	RestrictRequireInstance
)

// Status is the lifecycle flag attached to every node:
// current/deprecated/obsolete.
type Status int

const (
	StatusCurrent Status = iota
	StatusDeprecated
	StatusObsolete
)

func (s Status) String() string {
	switch s {
	case StatusDeprecated:
		return "deprecated"
	case StatusObsolete:
		return "obsolete"
	default:
		return "current"
	}
}

func StatusFromString(s string) (Status, bool) {
	switch s {
	case "current":
		return StatusCurrent, true
	case "deprecated":
		return StatusDeprecated, true
	case "obsolete":
		return StatusObsolete, true
	default:
		return StatusCurrent, false
	}
}

// OrderedBy is the leaf-list/list ordering flag: system or user.
type OrderedBy int

const (
	OrderedBySystem OrderedBy = iota
	OrderedByUser
)

func (o OrderedBy) String() string {
	if o == OrderedByUser {
		return "user"
	}
	return "system"
}
