// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ClientStatus is the lifecycle state of a client record.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s ClientStatus) Valid() bool {
	return s == ClientActive || s == ClientInactive
}

// Client is a contact record managed by the authenticated user. It is not
// related to the "client" of client-server terminology.
type Client struct {
	// ID is assigned by the backend at creation time. Only uniqueness may be
	// relied upon; format and ordering are unspecified.
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Company string       `json:"company"`
	Status  ClientStatus `json:"status"`
}

// NewClient is the payload for creating a client record. It has no ID.
type NewClient struct {
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Company string       `json:"company"`
	Status  ClientStatus `json:"status"`
}

// WithID builds the stored record for c under the given id.
func (c NewClient) WithID(id string) Client {
	return Client{
		ID:      id,
		Name:    c.Name,
		Email:   c.Email,
		Company: c.Company,
		Status:  c.Status,
	}
}
