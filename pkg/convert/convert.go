// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses optional scalar form values.

An empty string means "not provided" and yields a nil pointer; anything else
must parse or the caller gets an error to report against the field.
*/
package convert

import (
	"strconv"
	"strings"
)

// OptionalInt parses s as a base-10 integer.
func OptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// OptionalBool parses s with [strconv.ParseBool] ("true", "1", "false", "0", ...).
func OptionalBool(s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
