package pageobject

import (
	"context"

	"github.com/entrhq/pagekit/pkg/logging"
)

// Tracker holds the active page object and dispatches its keywords.
// States are empty and active; the only transition is Activate, which
// replaces the previous page object wholesale. Superseded page objects
// are simply abandoned; they hold no external resources, so nothing
// needs releasing.
//
// Keyword execution is single-threaded and cooperative, so the tracker
// does no locking.
type Tracker struct {
	current *PageObject
	log     *logging.Logger
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{log: logging.Discard()}
}

// SetLogger replaces the tracker's logger.
func (t *Tracker) SetLogger(log *logging.Logger) {
	if log != nil {
		t.log = log
	}
}

// Activate makes page the active context, superseding any previous one.
func (t *Tracker) Activate(page *PageObject) {
	if t.current != nil {
		t.log.Debugf("replacing active page object %s/%s", t.current.category, t.current.subject)
	}
	t.current = page
	t.log.Infof("active page object is now %s/%s", page.category, page.subject)
}

// Current returns the active page object, or false when none is loaded.
func (t *Tracker) Current() (*PageObject, bool) {
	return t.current, t.current != nil
}

// Clear empties the tracker. Not required by the dispatch lifecycle,
// but lets suite teardown drop the last page object promptly.
func (t *Tracker) Clear() {
	t.current = nil
}

// Dispatch normalizes the operation name and invokes it on the active
// page object, forwarding args unmodified. An unknown name, or an
// empty tracker, yields a DispatchError and leaves the active context
// unchanged.
func (t *Tracker) Dispatch(ctx context.Context, name string, args ...string) (string, error) {
	if t.current == nil {
		return "", &DispatchError{Operation: name}
	}
	return t.current.Invoke(ctx, name, args...)
}

// KeywordNames returns the active page object's keyword names, or nil
// when the tracker is empty.
func (t *Tracker) KeywordNames() []string {
	if t.current == nil {
		return nil
	}
	return t.current.Keywords()
}
