package session

import (
	"sync"

	"menubot/internal/domain"
)

// State is a snapshot of the transient state of one conversation
type State struct {
	AwaitingName bool
}

// Registry holds per-conversation state that lives only as long as the process
type Registry struct {
	mu            sync.RWMutex
	awaitingName  map[domain.SessionKey]bool
	registrations map[int64]*domain.Registration
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		awaitingName:  make(map[domain.SessionKey]bool),
		registrations: make(map[int64]*domain.Registration),
	}
}

// Get returns the conversation's state; unknown keys read as empty
func (r *Registry) Get(key domain.SessionKey) State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return State{AwaitingName: r.awaitingName[key]}
}

// IsAwaitingName reports whether the conversation was asked for a name
func (r *Registry) IsAwaitingName(key domain.SessionKey) bool {
	return r.Get(key).AwaitingName
}

// SetAwaitingName marks or clears the name prompt of a conversation
func (r *Registry) SetAwaitingName(key domain.SessionKey, awaiting bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if awaiting {
		r.awaitingName[key] = true
		return
	}
	delete(r.awaitingName, key)
}

// RegistrationFor returns the user's in-flight registration
func (r *Registry) RegistrationFor(userID int64) (*domain.Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.registrations[userID]
	return reg, ok
}

// UpsertRegistration stores the user's registration run
func (r *Registry) UpsertRegistration(reg *domain.Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations[reg.UserID] = reg
}

// RemoveRegistration drops the user's registration run
func (r *Registry) RemoveRegistration(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.registrations, userID)
}

// Len returns how many conversations and registrations are tracked
func (r *Registry) Len() (awaiting, registrations int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.awaitingName), len(r.registrations)
}
