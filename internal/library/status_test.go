package library

import "testing"

func TestStatusRegistryCanOpen(t *testing.T) {
	r := NewStatusRegistry()

	if r.CanOpen(DomainVideo) {
		t.Error("unattempted domain should not be openable")
	}

	r.SetState(DomainVideo, DomainUpdating)
	if r.CanOpen(DomainVideo) {
		t.Error("updating domain should not be openable")
	}

	r.SetState(DomainVideo, DomainReady)
	if !r.CanOpen(DomainVideo) {
		t.Error("ready domain should be openable")
	}

	r.SetState(DomainVideo, DomainFailed)
	if r.CanOpen(DomainVideo) {
		t.Error("failed domain should not be openable")
	}

	if _, ok := r.State(DomainMusic); ok {
		t.Error("unattempted domain should have no state record")
	}
}
