// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package resolve

import "strings"

// featureToken is one feature-name reference extracted from an if-feature
// boolean expression (RFC 7950 §7.20.2: "and", "or", "not" and
// parenthesization over bare feature-identifier operands).
type featureToken struct {
	prefix string
	name   string
}

// tokenizeFeatureExpr extracts every feature-identifier operand from expr,
// discarding the "and"/"or"/"not" keywords and parentheses -- evaluating
// the boolean expression itself is a runtime concern (the active feature
// set is not an input to this resolver), only reference resolution is.
func tokenizeFeatureExpr(expr string) []featureToken {
	expr = strings.ReplaceAll(expr, "(", " ")
	expr = strings.ReplaceAll(expr, ")", " ")
	var out []featureToken
	for _, f := range strings.Fields(expr) {
		switch f {
		case "and", "or", "not":
			continue
		}
		prefix, name := "", f
		if i := strings.IndexByte(f, ':'); i >= 0 {
			prefix, name = f[:i], f[i+1:]
		}
		out = append(out, featureToken{prefix: prefix, name: name})
	}
	return out
}
