package usecase

import (
	"sync"

	"popup-ads/internal/core/domain"
)

// PendingSlot holds at most one one-shot trigger. Set overwrites, Take
// consumes. It has its own lock so other features can set a trigger while
// an evaluation is running.
type PendingSlot struct {
	mu      sync.Mutex
	trigger domain.Trigger
}

// Set stores trigger, replacing any waiting one. Empty triggers clear the slot.
func (p *PendingSlot) Set(trigger domain.Trigger) {
	p.mu.Lock()
	p.trigger = trigger
	p.mu.Unlock()
}

// Peek returns the waiting trigger without consuming it.
func (p *PendingSlot) Peek() (domain.Trigger, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trigger, p.trigger.IsValid()
}

// Take returns the waiting trigger and empties the slot.
func (p *PendingSlot) Take() (domain.Trigger, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.trigger
	p.trigger = ""
	return t, t.IsValid()
}
