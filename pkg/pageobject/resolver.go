package pageobject

import (
	"context"

	"github.com/entrhq/pagekit/pkg/capability"
	"github.com/entrhq/pagekit/pkg/logging"
)

// Resolver selects the descriptor for a (category, subject) request and
// turns it into a live page object. Specific descriptors win over the
// category's generic fallback; nothing else about load order matters.
type Resolver struct {
	registry *Registry
	generics *GenericSet
	caps     capability.Set
	tracker  *Tracker
	log      *logging.Logger
}

// NewResolver wires a resolver to its registry, fallback set, shared
// capabilities and active-context tracker.
func NewResolver(registry *Registry, generics *GenericSet, caps capability.Set, tracker *Tracker) *Resolver {
	return &Resolver{
		registry: registry,
		generics: generics,
		caps:     caps,
		tracker:  tracker,
		log:      logging.Discard(),
	}
}

// SetLogger replaces the resolver's logger.
func (r *Resolver) SetLogger(log *logging.Logger) {
	if log != nil {
		r.log = log
	}
}

// lookup finds the winning descriptor and the qualified subject without
// instantiating anything.
func (r *Resolver) lookup(category, subject string) (Descriptor, string, error) {
	qualified := r.registry.Qualify(subject)

	if desc, ok := r.registry.Get(category, subject); ok {
		return desc, qualified, nil
	}
	if desc, ok := r.generics.Fallback(category); ok {
		return desc, qualified, nil
	}
	return nil, "", &ResolutionError{Category: category, Subject: subject}
}

// Instantiate builds the page object for the pair without touching the
// active context. Two calls with the same arguments against an
// unchanged registry yield behaviorally equivalent objects.
func (r *Resolver) Instantiate(category, subject string) (*PageObject, error) {
	desc, qualified, err := r.lookup(category, subject)
	if err != nil {
		r.log.Warnf("%v", err)
		return nil, err
	}

	page := desc.Instantiate(qualified, r.caps)
	if page.navigate == nil {
		// Specific descriptors without their own navigator fall back to
		// the category's navigation, when the category has one.
		if generic, ok := r.generics.categories[normalizeCategory(category)]; ok {
			page.navigate = generic.navigate
		}
	}

	if desc.Subject() == "" {
		r.log.Debugf("resolved %s/%s to the generic %s page", category, subject, desc.Category())
	} else {
		r.log.Debugf("resolved %s/%s to a specific page object", category, subject)
	}
	return page, nil
}

// Resolve instantiates the page object for the pair and makes it the
// active context, replacing whatever was active before.
func (r *Resolver) Resolve(category, subject string) (*PageObject, error) {
	page, err := r.Instantiate(category, subject)
	if err != nil {
		return nil, err
	}
	r.tracker.Activate(page)
	return page, nil
}

// ValidateCurrent checks the browser's current location against the
// expected pattern for the pair: the descriptor's custom matcher if it
// declared one, the category pattern otherwise. A mismatch is reported
// as false, not an error; the error return is reserved for resolution
// failures and the browser query itself.
func (r *Resolver) ValidateCurrent(ctx context.Context, category, subject string) (bool, error) {
	desc, qualified, err := r.lookup(category, subject)
	if err != nil {
		return false, err
	}

	location, err := r.caps.Browser.CurrentLocation(ctx)
	if err != nil {
		return false, err
	}

	matched := desc.Matches(qualified, location)
	if !matched {
		r.log.Debugf("location %q did not match %s/%s", location, category, subject)
	}
	return matched, nil
}
