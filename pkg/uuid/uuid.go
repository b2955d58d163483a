// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the time-ordered identifiers used as primary keys.
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string. Rows keyed by it sort by creation time.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// The random source failing leaves nothing sensible to do.
		panic("uuid: failed to generate v7: " + err.Error())
	}
	return id.String()
}
