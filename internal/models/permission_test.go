package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionSetToggleCreatesEntry(t *testing.T) {
	var set PermissionSet
	set = set.Toggle("courses", "read")
	require.Len(t, set, 1)
	assert.Equal(t, "courses", set[0].Module)
	assert.Equal(t, []string{"read"}, set[0].Actions)
}

func TestPermissionSetWildcardReplacesPartialGrants(t *testing.T) {
	var set PermissionSet
	set = set.Toggle("courses", "read")
	set = set.Toggle("courses", "update")
	set = set.Toggle("courses", ActionWildcard)
	require.Len(t, set, 1)
	assert.Equal(t, []string{ActionWildcard}, set[0].Actions)
}

func TestPermissionSetWildcardToggleOffRemovesModule(t *testing.T) {
	var set PermissionSet
	set = set.Toggle("courses", ActionWildcard)
	require.Len(t, set, 1)
	set = set.Toggle("courses", ActionWildcard)
	assert.Empty(t, set)
}

func TestPermissionSetSpecificActionStripsWildcard(t *testing.T) {
	var set PermissionSet
	set = set.Toggle("users", ActionWildcard)
	set = set.Toggle("users", "delete")
	require.Len(t, set, 1)
	assert.Equal(t, []string{"delete"}, set[0].Actions)
}

func TestPermissionSetLastActionRemovalDropsModule(t *testing.T) {
	var set PermissionSet
	set = set.Toggle("colleges", "read")
	set = set.Toggle("colleges", "update")
	set = set.Toggle("colleges", "read")
	require.Len(t, set, 1)
	assert.Equal(t, []string{"update"}, set[0].Actions)
	set = set.Toggle("colleges", "update")
	assert.Empty(t, set)
}

func TestPermissionSetCloneSurvivesToggle(t *testing.T) {
	set := PermissionSet{{Module: "users", Actions: []string{"view", "edit"}}}
	snapshot := set.Clone()
	set = set.Toggle("users", "view")
	require.Len(t, snapshot, 1)
	assert.Equal(t, []string{"view", "edit"}, snapshot[0].Actions)
	assert.Equal(t, []string{"edit"}, set[0].Actions)
}

func TestPermissionSetHas(t *testing.T) {
	var set PermissionSet
	set = set.Toggle("courses", "read")
	set = set.Toggle("users", ActionWildcard)

	assert.True(t, set.Has("courses", "read"))
	assert.False(t, set.Has("courses", "delete"))
	assert.True(t, set.Has("users", "anything"))
	assert.False(t, set.Has("reports", "read"))
}

func TestPermissionSetModulesIndependent(t *testing.T) {
	var set PermissionSet
	set = set.Toggle("courses", "read")
	set = set.Toggle("users", "read")
	set = set.Toggle("courses", ActionWildcard)
	set = set.Toggle("courses", ActionWildcard)

	require.Len(t, set, 1)
	assert.Equal(t, "users", set[0].Module)
}

func TestPermissionSetRoundTrip(t *testing.T) {
	var set PermissionSet
	set = set.Toggle("courses", "read")
	set = set.Toggle("users", ActionWildcard)

	raw, err := set.Value()
	require.NoError(t, err)

	var decoded PermissionSet
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, set, decoded)
}
