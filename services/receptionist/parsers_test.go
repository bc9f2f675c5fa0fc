package receptionist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFullName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"John Smith", "John Smith", true},
		{"  John Smith  ", "John Smith", true},
		{"mary ann parker", "mary ann parker", true},
		{"John", "", false},
		{"my name is John Smith", "", false},
		{"John Smith3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseFullName(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParsePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"(512) 555-1234", "(512) 555-1234", true},
		{"512-555-1234", "512-555-1234", true},
		{"512.555.1234", "512.555.1234", true},
		{"5125551234", "5125551234", true},
		{"you can reach me at 512-555-1234 after 5", "512-555-1234", true},
		{"call me maybe", "", false},
		{"555-1234", "", false},
	}
	for _, tc := range cases {
		got, ok := ParsePhone(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestIsConfirmation(t *testing.T) {
	assert.True(t, isConfirmation("BOOK NOW"))
	assert.True(t, isConfirmation("book now"))
	assert.True(t, isConfirmation("  Book Now  "))
	assert.False(t, isConfirmation("book it"))
	assert.False(t, isConfirmation("please book now for me"))
}

func TestContainsTriggerPhrase(t *testing.T) {
	assert.True(t, containsTriggerPhrase("lets book"))
	assert.True(t, containsTriggerPhrase("Let's book an appointment"))
	assert.True(t, containsTriggerPhrase("ok LETS BOOK it"))
	assert.False(t, containsTriggerPhrase("I want to make a booking"))
	assert.False(t, containsTriggerPhrase("hello"))
}
