// Package pageobject implements page-object resolution and keyword
// dispatch for keyword-driven browser test suites.
//
// A page object is a reusable bundle of keywords tied to a page
// archetype (the category: Home, Listing, Detail, ...) and a domain
// entity (the subject: Contact, Island__c, ...). Authors declare page
// objects with Define and group them into Sources; a Registry loads the
// sources once per run; a Resolver picks the most specific descriptor
// for a (category, subject) request, falling back to the built-in
// generic page for the category; the winning page object's keywords are
// then dispatchable until the next page object is activated.
package pageobject

import (
	"context"
	"fmt"
	"sort"

	"github.com/entrhq/pagekit/pkg/capability"
)

// Operation is a single dispatchable keyword of a page object. Arguments
// arrive from the keyword-execution host as strings, forwarded
// unmodified; the returned string is the keyword's result value.
type Operation func(ctx context.Context, page *PageObject, args ...string) (string, error)

// NavigateFunc computes and performs navigation to a page. Page objects
// without their own NavigateFunc navigate via the URL pattern of their
// category, when one exists.
type NavigateFunc func(ctx context.Context, page *PageObject, args ...string) error

// MatchFunc reports whether a browser location belongs to the page for
// the given subject. A custom MatchFunc on a definition takes precedence
// over the category's default pattern.
type MatchFunc func(subject, location string) bool

// Descriptor is a registered page-object behavior unit, keyed by
// (category, subject). There are two variants: specific descriptors
// built by authors with Define, and the built-in generic descriptors
// that back each category when no specific one matches.
type Descriptor interface {
	// Category returns the page archetype this descriptor serves.
	Category() string

	// Subject returns the entity this descriptor is bound to. Generic
	// descriptors return "" because their subject is bound per
	// resolution.
	Subject() string

	// Keywords returns the sorted, normalized operation names.
	Keywords() []string

	// Matches reports whether location belongs to this page when bound
	// to subject.
	Matches(subject, location string) bool

	// Instantiate builds the dispatchable page object, injecting the
	// shared capabilities. Descriptors never own the capabilities.
	Instantiate(subject string, caps capability.Set) *PageObject
}

// Definition is the author-facing builder for a specific page object.
// Each call chains; validation errors surface when the definition is
// loaded into a registry.
//
//	pageobject.Define("Listing", "Island__c").
//		Keyword("Open Northern Island", openNorthern).
//		Matcher(pageobject.GlobMatcher("*/islands/{subject}/all"))
type Definition struct {
	category string
	subject  string
	keywords map[string]Operation
	navigate NavigateFunc
	match    MatchFunc
	err      error
}

// Define starts a page-object definition for the given category and
// subject. Category may be one of the built-in archetypes or any custom
// string; subject is the entity name, qualified with the project
// namespace at load time if one is configured.
func Define(category, subject string) *Definition {
	d := &Definition{
		category: category,
		subject:  subject,
		keywords: make(map[string]Operation),
	}
	if normalizeCategory(category) == "" {
		d.err = fmt.Errorf("page object category must not be empty")
	} else if subject == "" {
		d.err = fmt.Errorf("page object subject must not be empty for category %q", category)
	}
	return d
}

// Keyword adds a dispatchable operation. The name is normalized; two
// keywords normalizing to the same name is a definition error.
func (d *Definition) Keyword(name string, op Operation) *Definition {
	if d.err != nil {
		return d
	}
	normalized := NormalizeKeyword(name)
	if normalized == "" {
		d.err = fmt.Errorf("keyword name must not be empty on %s/%s", d.category, d.subject)
		return d
	}
	if op == nil {
		d.err = fmt.Errorf("keyword %q on %s/%s has no implementation", name, d.category, d.subject)
		return d
	}
	if _, exists := d.keywords[normalized]; exists {
		d.err = fmt.Errorf("duplicate keyword %q on %s/%s", normalized, d.category, d.subject)
		return d
	}
	d.keywords[normalized] = op
	return d
}

// Navigator sets a custom navigation function, replacing the category's
// URL pattern for Go To Page.
func (d *Definition) Navigator(fn NavigateFunc) *Definition {
	if d.err == nil {
		d.navigate = fn
	}
	return d
}

// Matcher sets a custom location check, replacing the category's
// default pattern for Current Page Should Be.
func (d *Definition) Matcher(fn MatchFunc) *Definition {
	if d.err == nil {
		d.match = fn
	}
	return d
}

// build validates the definition and freezes it into a descriptor with
// the loader-qualified subject.
func (d *Definition) build(qualifiedSubject string) (*specificDescriptor, error) {
	if d.err != nil {
		return nil, d.err
	}
	keywords := make(map[string]Operation, len(d.keywords))
	for name, op := range d.keywords {
		keywords[name] = op
	}
	return &specificDescriptor{
		category: d.category,
		subject:  qualifiedSubject,
		keywords: keywords,
		navigate: d.navigate,
		match:    d.match,
	}, nil
}

// specificDescriptor is the author-defined descriptor variant.
type specificDescriptor struct {
	category string
	subject  string
	keywords map[string]Operation
	navigate NavigateFunc
	match    MatchFunc
}

func (s *specificDescriptor) Category() string { return s.category }
func (s *specificDescriptor) Subject() string  { return s.subject }

func (s *specificDescriptor) Keywords() []string {
	return sortedKeywordNames(s.keywords)
}

func (s *specificDescriptor) Matches(subject, location string) bool {
	if s.match != nil {
		return s.match(subject, location)
	}
	if pattern, ok := defaultPattern(s.category); ok {
		return matchLocation(pattern, subject, location)
	}
	// Custom category without a matcher: nothing to check against.
	return false
}

func (s *specificDescriptor) Instantiate(subject string, caps capability.Set) *PageObject {
	return &PageObject{
		category:   s.category,
		subject:    s.subject,
		caps:       caps,
		keywords:   s.keywords,
		navigate:   s.navigate,
		descriptor: s,
	}
}

// PageObject is an instantiated, dispatchable behavior object. At most
// one page object is active at a time; instances are ephemeral and
// abandoned when the next resolution supersedes them, so they must not
// hold external resources (those belong to the injected capabilities).
type PageObject struct {
	category   string
	subject    string
	caps       capability.Set
	keywords   map[string]Operation
	navigate   NavigateFunc
	descriptor Descriptor // back-reference for logging only
}

// Category returns the page archetype of this page object.
func (p *PageObject) Category() string { return p.category }

// Subject returns the (qualified) entity this page object is bound to.
func (p *PageObject) Subject() string { return p.subject }

// Capabilities returns the shared facilities injected at instantiation.
func (p *PageObject) Capabilities() capability.Set { return p.caps }

// Keywords returns the sorted, normalized keyword names of this page
// object.
func (p *PageObject) Keywords() []string {
	return sortedKeywordNames(p.keywords)
}

// Invoke runs the named keyword with the given arguments. The name is
// normalized first; an absent keyword yields a DispatchError.
func (p *PageObject) Invoke(ctx context.Context, name string, args ...string) (string, error) {
	op, ok := p.keywords[NormalizeKeyword(name)]
	if !ok {
		return "", &DispatchError{Operation: name}
	}
	return op(ctx, p, args...)
}

// Navigate goes to this page, using the definition's navigator when one
// was declared and the category URL pattern otherwise.
func (p *PageObject) Navigate(ctx context.Context, args ...string) error {
	if p.navigate == nil {
		return fmt.Errorf("page object %s/%s does not support navigation", p.category, p.subject)
	}
	return p.navigate(ctx, p, args...)
}

func sortedKeywordNames(keywords map[string]Operation) []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
