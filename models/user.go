// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is the account owner as returned by the backend.
// The password never travels inside this type.
type User struct {
	// ID is an opaque backend-assigned identifier.
	ID string `json:"id"`

	// Email is the natural external identifier of the account.
	Email string `json:"email"`

	// Name is the display name shown in the UI.
	Name string `json:"name"`
}

// Merge returns a copy of u with every non-empty field of update applied on
// top of it. Fields missing from update keep their previous value.
func (u User) Merge(update User) User {
	if update.ID != "" {
		u.ID = update.ID
	}
	if update.Email != "" {
		u.Email = update.Email
	}
	if update.Name != "" {
		u.Name = update.Name
	}
	return u
}

// UserPatch is a partial profile update. Only non-nil fields are sent to the
// backend and applied.
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}

// Apply returns u with the patch fields applied.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return u
}
