package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStateComplete(t *testing.T) {
	vehicle := "2019 Toyota Prius"
	name := "John Smith"
	phone := "(512) 555-1234"
	when := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)

	st := &BookingState{}
	assert.False(t, st.Complete())

	st.Vehicle = &vehicle
	st.Datetime = &when
	st.Name = &name
	st.Phone = &phone
	assert.False(t, st.Complete(), "duration still unset")

	// A set zero duration counts as set; only nil means missing.
	zero := 0.0
	st.Duration = &zero
	assert.True(t, st.Complete())
}

func TestNewConversationSession(t *testing.T) {
	sess := NewConversationSession()
	assert.Equal(t, ModeChat, sess.Mode)
	assert.Empty(t, sess.History)
	assert.Nil(t, sess.Booking)
}

func TestLatestUserMessage(t *testing.T) {
	sess := NewConversationSession()
	assert.Equal(t, "", sess.LatestUserMessage())

	sess.AppendTurn(RoleUser, "first")
	sess.AppendTurn(RoleAssistant, "reply")
	sess.AppendTurn(RoleUser, "second")
	sess.AppendTurn(RoleAssistant, "another reply")
	assert.Equal(t, "second", sess.LatestUserMessage())
}
