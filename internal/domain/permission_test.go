package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermissionString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PermissionSet
	}{
		{
			name: "empty string grants nothing",
			raw:  "",
			want: PermissionSet{},
		},
		{
			name: "whitespace only grants nothing",
			raw:  "   ",
			want: PermissionSet{},
		},
		{
			name: "explicit levels",
			raw:  "Cases:FullControl,Dashboard:ReadOnly",
			want: PermissionSet{
				{Page: "Cases", Level: LevelFullControl},
				{Page: "Dashboard", Level: LevelReadOnly},
			},
		},
		{
			name: "missing level defaults to full control",
			raw:  "Cases",
			want: PermissionSet{{Page: "Cases", Level: LevelFullControl}},
		},
		{
			name: "unknown level defaults to full control",
			raw:  "Cases:Banana",
			want: PermissionSet{{Page: "Cases", Level: LevelFullControl}},
		},
		{
			name: "read alias maps to read only",
			raw:  "Cases:read",
			want: PermissionSet{{Page: "Cases", Level: LevelReadOnly}},
		},
		{
			name: "empty tokens are skipped",
			raw:  ",Cases,,Dashboard:ReadOnly,",
			want: PermissionSet{
				{Page: "Cases", Level: LevelFullControl},
				{Page: "Dashboard", Level: LevelReadOnly},
			},
		},
		{
			name: "token with empty page is skipped",
			raw:  ":ReadOnly,Cases",
			want: PermissionSet{{Page: "Cases", Level: LevelFullControl}},
		},
		{
			name: "duplicates preserved in order",
			raw:  "Cases:ReadOnly,Cases:FullControl",
			want: PermissionSet{
				{Page: "Cases", Level: LevelReadOnly},
				{Page: "Cases", Level: LevelFullControl},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePermissionString(tc.raw))
		})
	}
}

func TestFormatPermissionString(t *testing.T) {
	set := PermissionSet{
		{Page: "Cases", Level: LevelFullControl},
		{Page: "Dashboard", Level: LevelReadOnly},
	}
	assert.Equal(t, "Cases:FullControl,Dashboard:ReadOnly", FormatPermissionString(set))
	assert.Equal(t, "", FormatPermissionString(nil))
}

func TestFormatParseRoundTrip(t *testing.T) {
	set := PermissionSet{
		{Page: "Admin", Level: LevelFullControl},
		{Page: "Audit", Level: LevelReadOnly},
	}
	require.Equal(t, set, ParsePermissionString(FormatPermissionString(set)))
}

func TestPermissionSetGrants(t *testing.T) {
	set := ParsePermissionString("Cases:ReadOnly,Dashboard")

	assert.True(t, set.Grants("Cases", LevelReadOnly))
	assert.True(t, set.Grants("Cases", LevelReadOnly, LevelFullControl))
	assert.False(t, set.Grants("Cases", LevelFullControl))
	assert.True(t, set.Grants("Dashboard", LevelFullControl))
	assert.False(t, set.Grants("Users", LevelReadOnly, LevelFullControl))
}

func TestPermissionSetGrantsCaseInsensitive(t *testing.T) {
	set := ParsePermissionString("cases:ReadOnly")
	assert.True(t, set.Grants("Cases", LevelReadOnly))
	assert.True(t, set.Grants("CASES", LevelReadOnly))
}

func TestPermissionSetFirstEntryWins(t *testing.T) {
	set := ParsePermissionString("Cases:ReadOnly,Cases:FullControl")

	// The later FullControl entry is never consulted.
	assert.False(t, set.Grants("Cases", LevelFullControl))
	assert.True(t, set.Grants("Cases", LevelReadOnly))

	level, ok := set.Level("Cases")
	require.True(t, ok)
	assert.Equal(t, LevelReadOnly, level)
}
