package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Merge_KeepsMissingFields(t *testing.T) {
	u := User{ID: "u1", Email: "a@x.com", Name: "Alice"}

	got := u.Merge(User{Name: "X"})

	assert.Equal(t, User{ID: "u1", Email: "a@x.com", Name: "X"}, got)
	assert.Equal(t, "Alice", u.Name, "receiver must not be modified")
}

func TestUser_Merge_Empty(t *testing.T) {
	u := User{ID: "u1", Email: "a@x.com", Name: "Alice"}
	assert.Equal(t, u, u.Merge(User{}))
}

func TestUserPatch_Apply(t *testing.T) {
	name := "Bob"
	p := UserPatch{Name: &name}

	assert.False(t, p.IsEmpty())
	assert.True(t, UserPatch{}.IsEmpty())
	assert.Equal(t, User{ID: "u1", Email: "a@x.com", Name: "Bob"},
		p.Apply(User{ID: "u1", Email: "a@x.com", Name: "Alice"}))
}

func TestClientStatus_Valid(t *testing.T) {
	assert.True(t, ClientActive.Valid())
	assert.True(t, ClientInactive.Valid())
	assert.False(t, ClientStatus("archived").Valid())
	assert.False(t, ClientStatus("").Valid())
}

func TestNewClient_WithID(t *testing.T) {
	c := NewClient{Name: "A", Email: "a@x.com", Company: "C", Status: ClientActive}
	assert.Equal(t, Client{ID: "id-1", Name: "A", Email: "a@x.com", Company: "C", Status: ClientActive}, c.WithID("id-1"))
}

func TestAppBuildInfo_DefaultsToNA(t *testing.T) {
	info := NewAppBuildInfo("", "2026-01-01", "")
	assert.Equal(t, "N/A", info.BuildVersion())
	assert.Equal(t, "2026-01-01", info.BuildDate())
	assert.Equal(t, "N/A", info.BuildCommit())
	assert.Contains(t, info.String(), "Build date: 2026-01-01")
}
