package session

import (
	"testing"

	"menubot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_AwaitingName(t *testing.T) {
	r := NewRegistry()
	key := domain.SessionKey{ChatID: "5511", RobotID: 1}
	other := domain.SessionKey{ChatID: "5511", RobotID: 2}

	assert.False(t, r.IsAwaitingName(key), "unknown key reads as absent")

	r.SetAwaitingName(key, true)
	assert.True(t, r.IsAwaitingName(key))
	assert.True(t, r.Get(key).AwaitingName)
	assert.False(t, r.IsAwaitingName(other), "same chat on another robot is a separate conversation")

	r.SetAwaitingName(key, false)
	assert.False(t, r.IsAwaitingName(key))

	awaiting, _ := r.Len()
	assert.Equal(t, 0, awaiting)
}

func TestRegistry_Registrations(t *testing.T) {
	r := NewRegistry()

	_, ok := r.RegistrationFor(7)
	assert.False(t, ok)

	reg := domain.NewRegistration(7, []domain.Question{{ID: 1}})
	r.UpsertRegistration(reg)

	got, ok := r.RegistrationFor(7)
	assert.True(t, ok)
	assert.Same(t, reg, got)

	_, registrations := r.Len()
	assert.Equal(t, 1, registrations)

	r.RemoveRegistration(7)
	_, ok = r.RegistrationFor(7)
	assert.False(t, ok)

	// Removing an unknown key is a no-op
	r.RemoveRegistration(99)
}
