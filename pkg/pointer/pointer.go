// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer helps with optional fields expressed as pointers.
package pointer

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Or dereferences p, returning fallback when p is nil.
func Or[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
