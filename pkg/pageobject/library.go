package pageobject

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/entrhq/pagekit/pkg/capability"
	"github.com/entrhq/pagekit/pkg/logging"
)

// Library is the keyword surface this package exposes to a keyword-
// execution host. It owns one registry, one generic fallback set, one
// resolver and one active-context tracker, so every suite run that
// builds its own Library is fully isolated from other runs in the same
// process.
type Library struct {
	registry *Registry
	generics *GenericSet
	tracker  *Tracker
	resolver *Resolver
	log      *logging.Logger
	core     map[string]coreKeyword
}

type coreKeyword struct {
	minArgs int
	run     func(ctx context.Context, args []string) (string, error)
}

// Option configures a Library.
type Option func(*options)

type options struct {
	namespace string
	generics  *GenericSet
	log       *logging.Logger
}

// WithNamespace sets the project namespace prefix applied to custom
// subjects.
func WithNamespace(namespace string) Option {
	return func(o *options) { o.namespace = namespace }
}

// WithGenerics replaces the default generic fallback set, for hosts
// that define additional page categories.
func WithGenerics(generics *GenericSet) Option {
	return func(o *options) { o.generics = generics }
}

// WithLogger routes library logging to the given logger.
func WithLogger(log *logging.Logger) Option {
	return func(o *options) { o.log = log }
}

// New builds a Library around the injected capabilities.
func New(caps capability.Set, opts ...Option) *Library {
	o := options{
		generics: DefaultGenerics(),
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	registry := NewRegistry(o.namespace)
	registry.SetLogger(o.log)
	tracker := NewTracker()
	tracker.SetLogger(o.log)
	resolver := NewResolver(registry, o.generics, caps, tracker)
	resolver.SetLogger(o.log)

	l := &Library{
		registry: registry,
		generics: o.generics,
		tracker:  tracker,
		resolver: resolver,
		log:      o.log,
	}
	l.core = map[string]coreKeyword{
		"go_to_page": {2, func(ctx context.Context, args []string) (string, error) {
			return "", l.GoToPage(ctx, args[0], args[1], args[2:]...)
		}},
		"current_page_should_be": {2, func(ctx context.Context, args []string) (string, error) {
			return "", l.CurrentPageShouldBe(ctx, args[0], args[1])
		}},
		"load_page_object": {2, func(ctx context.Context, args []string) (string, error) {
			page, err := l.LoadPageObject(args[0], args[1])
			if err != nil {
				return "", err
			}
			return page.Category() + "/" + page.Subject(), nil
		}},
		"get_page_object": {2, func(ctx context.Context, args []string) (string, error) {
			page, err := l.GetPageObject(args[0], args[1])
			if err != nil {
				return "", err
			}
			return page.Category() + "/" + page.Subject(), nil
		}},
		"log_page_object_keywords": {0, func(ctx context.Context, args []string) (string, error) {
			l.LogPageObjectKeywords()
			return "", nil
		}},
	}
	return l
}

// Load imports definition sources into the library's registry. Called
// once at suite start, before any keyword executes.
func (l *Library) Load(sources ...Source) error {
	if err := l.registry.Load(sources...); err != nil {
		l.log.Errorf("%v", err)
		return err
	}
	l.log.Infof("loaded %d page object(s) from %d source(s)", l.registry.Len(), len(sources))
	return nil
}

// Registry exposes the library's registry, mainly for hosts that want
// to enumerate what got loaded.
func (l *Library) Registry() *Registry { return l.registry }

// GoToPage resolves the pair, navigates to the page, and on success
// loads its keywords as the active context. Navigation uses the page
// object's own navigator when its definition declared one.
func (l *Library) GoToPage(ctx context.Context, category, subject string, args ...string) error {
	page, err := l.resolver.Instantiate(category, subject)
	if err != nil {
		return err
	}
	if err := page.Navigate(ctx, args...); err != nil {
		l.log.Errorf("navigation to %s/%s failed: %v", category, subject, err)
		return err
	}
	l.tracker.Activate(page)
	return nil
}

// CurrentPageShouldBe verifies the browser is on the page for the pair.
// On success the page object becomes the active context; on mismatch it
// returns a MismatchError the caller may treat as a failed assertion.
func (l *Library) CurrentPageShouldBe(ctx context.Context, category, subject string) error {
	ok, err := l.resolver.ValidateCurrent(ctx, category, subject)
	if err != nil {
		return err
	}
	if !ok {
		location, locErr := l.resolver.caps.Browser.CurrentLocation(ctx)
		if locErr != nil {
			location = "<unavailable>"
		}
		return &MismatchError{Category: category, Subject: subject, Location: location}
	}
	_, err = l.resolver.Resolve(category, subject)
	return err
}

// LoadPageObject resolves the pair and makes it the active context
// without navigating.
func (l *Library) LoadPageObject(category, subject string) (*PageObject, error) {
	return l.resolver.Resolve(category, subject)
}

// GetPageObject resolves the pair without touching the active context.
// Useful for calling a single keyword of another page object.
func (l *Library) GetPageObject(category, subject string) (*PageObject, error) {
	return l.resolver.Instantiate(category, subject)
}

// LogPageObjectKeywords logs every registered page object with its
// keyword names, sorted by category and subject.
func (l *Library) LogPageObjectKeywords() {
	for _, desc := range l.registry.Entries() {
		l.log.Infof("%s/%s: %s", desc.Category(), desc.Subject(), strings.Join(desc.Keywords(), ", "))
	}
	for _, category := range l.generics.Categories() {
		desc, _ := l.generics.Fallback(category)
		l.log.Infof("%s (generic): %s", category, strings.Join(desc.Keywords(), ", "))
	}
}

// KeywordNames returns the dispatchable keyword names: the core
// keywords plus, when a page object is active, its keywords.
func (l *Library) KeywordNames() []string {
	names := make([]string, 0, len(l.core))
	for name := range l.core {
		names = append(names, name)
	}
	names = append(names, l.tracker.KeywordNames()...)
	return sortedUnique(names)
}

// RunKeyword dispatches a keyword by name: core keywords first, then
// the active page object's. Unknown names yield a DispatchError,
// distinct from errors raised inside a keyword.
func (l *Library) RunKeyword(ctx context.Context, name string, args ...string) (string, error) {
	normalized := NormalizeKeyword(name)
	if kw, ok := l.core[normalized]; ok {
		if len(args) < kw.minArgs {
			return "", fmt.Errorf("keyword %q takes at least %d argument(s), got %d", name, kw.minArgs, len(args))
		}
		return kw.run(ctx, args)
	}
	if _, active := l.tracker.Current(); active {
		return l.tracker.Dispatch(ctx, normalized, args...)
	}
	return "", &DispatchError{Operation: name}
}

// Current returns the active page object, if any.
func (l *Library) Current() (*PageObject, bool) {
	return l.tracker.Current()
}

// Reset clears the active context. Suite teardown may call it; the
// registry is untouched.
func (l *Library) Reset() {
	l.tracker.Clear()
}

func sortedUnique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := names[:0]
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)
	return unique
}
