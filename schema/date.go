// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"
	"time"
)

const dateSuffix = "T00:00:00Z"

// validDate checks that s is a calendar-valid YYYY-MM-DD date. It parses
// "<date>T00:00:00Z" as RFC3339 to reject e.g. 2019-02-30.
func validDate(s string) error {
	if _, err := time.Parse(time.RFC3339, s+dateSuffix); err != nil {
		return fmt.Errorf("invalid revision date %q", s)
	}
	return nil
}

// isValidDate reports whether s is a calendar-valid revision date.
func isValidDate(s string) bool {
	return validDate(s) == nil
}
