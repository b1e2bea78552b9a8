package usecase

import "popup-ads/internal/core/domain"

// AmbientContext is the explicit dependency list of the ambient trigger.
// Tags are left out on purpose: adding an interest tag must not fire a popup.
type AmbientContext struct {
	Trigger    domain.Trigger
	Prefecture string
	Revision   string
}

// AmbientWatcher remembers the last ambient context and tells whether a
// newly reported one is a new event.
type AmbientWatcher struct {
	last AmbientContext
	seen bool
}

// Changed records next and reports whether it differs from the previous
// context. The first report always counts as a change, unless it carries
// no trigger.
func (w *AmbientWatcher) Changed(next AmbientContext) bool {
	changed := !w.seen || next != w.last
	w.last = next
	w.seen = true
	return changed && next.Trigger.IsValid()
}
