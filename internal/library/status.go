package library

import (
	"sync"
)

// Domain names a database domain tracked by the status registry.
type Domain string

const (
	DomainAddons  Domain = "addons"
	DomainView    Domain = "view"
	DomainTexture Domain = "texture"
	DomainMusic   Domain = "music"
	DomainVideo   Domain = "video"
	DomainPVR     Domain = "pvr"
	DomainEPG     Domain = "epg"
)

// DomainState is the lifecycle state of a database domain.
type DomainState string

const (
	DomainUpdating DomainState = "updating"
	DomainReady    DomainState = "ready"
	DomainFailed   DomainState = "failed"
)

// StatusRegistry tracks per-domain database readiness. Domains that were
// never attempted have no record and report as unusable.
type StatusRegistry struct {
	mu     sync.RWMutex
	states map[Domain]DomainState
}

// NewStatusRegistry creates an empty status registry.
func NewStatusRegistry() *StatusRegistry {
	return &StatusRegistry{states: make(map[Domain]DomainState)}
}

// SetState records the state of a domain.
func (r *StatusRegistry) SetState(d Domain, s DomainState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[d] = s
}

// State returns the recorded state of a domain and whether one exists.
func (r *StatusRegistry) State(d Domain) (DomainState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[d]
	return s, ok
}

// CanOpen reports whether a domain can currently be used. False for any
// domain not yet attempted, updating, or failed.
func (r *StatusRegistry) CanOpen(d Domain) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states[d] == DomainReady
}
