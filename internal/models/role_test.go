package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	for _, role := range []string{"admin", "moderator", "doctor", "user", "guest"} {
		assert.True(t, ValidRole(role), role)
	}
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Admin"))
}

func TestMayPublish(t *testing.T) {
	tests := []struct {
		role     Role
		category Category
		allowed  bool
	}{
		{RoleUser, CategoryCommunity, true},
		{RoleUser, CategoryResearch, false},
		{RoleUser, CategoryCourses, false},
		{RoleDoctor, CategoryCommunity, true},
		{RoleDoctor, CategoryResearch, false},
		{RoleAdmin, CategoryCommunity, true},
		{RoleAdmin, CategoryResearch, true},
		{RoleAdmin, CategoryCourses, true},
		{RoleModerator, CategoryResearch, true},
		{RoleModerator, CategoryCourses, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.role.MayPublish(tt.category),
			"%s publishing to %s", tt.role, tt.category)
	}
}

func TestElevated(t *testing.T) {
	assert.True(t, RoleAdmin.Elevated())
	assert.True(t, RoleModerator.Elevated())
	assert.False(t, RoleDoctor.Elevated())
	assert.False(t, RoleUser.Elevated())
	assert.False(t, RoleGuest.Elevated())
}

func TestRestrictedCategories(t *testing.T) {
	assert.False(t, CategoryCommunity.Restricted())
	assert.True(t, CategoryResearch.Restricted())
	assert.True(t, CategoryCourses.Restricted())
}
