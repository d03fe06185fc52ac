// Copyright (c) 2017,2019, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

// Package yangerr is the error taxonomy of the compiler: every error
// raised by package schema or package resolve carries a Kind and, where
// available, a source position, and can be rendered as a structured
// management-protocol error via ToManagementError, which builds
// github.com/danos/mgmterror values for exactly this purpose.
package yangerr

import (
	"fmt"

	"github.com/danos/mgmterror"
	"github.com/danos/utils/pathutil"
)

// Kind classifies a yangerr.Error by the broad category of failure.
type Kind int

const (
	Syntax Kind = iota
	Structural
	Reference
	Constraint
	Date
	Internal
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case Structural:
		return "StructuralError"
	case Reference:
		return "ReferenceError"
	case Constraint:
		return "ConstraintError"
	case Date:
		return "DateError"
	case Internal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// Code is one of the named error sub-kinds.
type Code string

const (
	MissingHolder        Code = "MISSING_HOLDER"
	InvalidHolder        Code = "INVALID_HOLDER"
	DuplicateStatement   Code = "DUPLICATE_STATEMENT"
	CardinalityViolation Code = "CARDINALITY_VIOLATION"
	MissingImport        Code = "MISSING_IMPORT"
	UnresolvedReference  Code = "UNRESOLVED_REFERENCE"
	CyclicReference      Code = "CYCLIC_REFERENCE"
	Collision            Code = "COLLISION"
	KeyRule              Code = "KEY_RULE"
	DefaultCaseMismatch  Code = "DEFAULT_CASE_MISMATCH"
	IllegalAugmentTarget Code = "ILLEGAL_AUGMENT_TARGET"
	MalformedDate        Code = "MALFORMED_DATE"
	OutOfRangeDate       Code = "OUT_OF_RANGE_DATE"
	ConstraintViolation  Code = "CONSTRAINT_VIOLATION"
	InvariantViolated    Code = "INVARIANT_VIOLATED"
)

// Position is the minimal source-location contract errors carry. It is
// satisfied by ast.Position without yangerr importing package ast (which
// would create an import cycle with package schema).
type Position interface {
	String() string
}

// Error is the concrete error type returned across package boundaries.
type Error struct {
	Kind    Kind
	Code    Code
	Pos     Position
	Path    []string
	Message string
}

func (e *Error) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, code Code, pos Position, path []string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Pos: pos, Path: path, Message: fmt.Sprintf(format, args...)}
}

func NewStructural(code Code, pos Position, format string, args ...interface{}) *Error {
	return New(Structural, code, pos, nil, format, args...)
}

func NewReference(code Code, pos Position, path []string, format string, args ...interface{}) *Error {
	return New(Reference, code, pos, path, format, args...)
}

func NewConstraint(code Code, pos Position, path []string, format string, args ...interface{}) *Error {
	return New(Constraint, code, pos, path, format, args...)
}

func NewDate(code Code, pos Position, format string, args ...interface{}) *Error {
	return New(Date, code, pos, nil, format, args...)
}

func NewInternal(pos Position, format string, args ...interface{}) *Error {
	return New(Internal, InvariantViolated, pos, nil, format, args...)
}

// ToManagementError renders e as a github.com/danos/mgmterror value, the
// shape the (out of scope) NETCONF/RESTCONF transport expects, using one
// constructor per error shape.
func (e *Error) ToManagementError() error {
	path := pathutil.Pathstr(e.Path)
	switch e.Kind {
	case Reference:
		me := mgmterror.NewOperationFailedApplicationError()
		me.Path = path
		me.Message = e.Message
		return me
	case Constraint:
		me := mgmterror.NewInvalidValueApplicationError()
		me.Path = path
		me.Message = e.Message
		return me
	case Structural:
		me := mgmterror.NewMissingElementApplicationError(string(e.Code))
		me.Path = path
		me.Message = e.Message
		return me
	case Date:
		me := mgmterror.NewInvalidValueApplicationError()
		me.Message = e.Message
		return me
	default:
		me := mgmterror.NewOperationFailedApplicationError()
		me.Path = path
		me.Message = e.Message
		return me
	}
}
