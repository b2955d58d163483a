// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "time"

// Identity is a caller whose session token validated and whose user record
// still exists. Handlers read it from the request context.
type Identity struct {
	UserID string
	Name   string
	Email  string

	// TokenID and ExpiresAt describe the credential that produced this identity.
	TokenID   string
	ExpiresAt time.Time
}
