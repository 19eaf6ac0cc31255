package pageobject

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/entrhq/pagekit/pkg/capability"
)

// Built-in page archetypes. Hosts may add their own categories to a
// GenericSet; anything else is unrecognized and resolution for it fails
// unless a specific descriptor exists.
const (
	CategoryHome    = "Home"
	CategoryListing = "Listing"
	CategoryDetail  = "Detail"
	CategoryNew     = "New"
)

// builtinPatterns are the location patterns of the built-in categories,
// matched against the trailing path segments of the browser location.
var builtinPatterns = map[string]string{
	"home":    "o/{subject}/home",
	"listing": "o/{subject}/list",
	"detail":  "r/{subject}/{id}/view",
	"new":     "o/{subject}/new",
}

// defaultPattern returns the built-in location pattern for a category.
func defaultPattern(category string) (string, bool) {
	pattern, ok := builtinPatterns[normalizeCategory(category)]
	return pattern, ok
}

// GenericSet holds one generic descriptor per page category. A generic
// descriptor has no subject of its own; the requested subject is bound
// when the descriptor is resolved.
type GenericSet struct {
	categories map[string]*genericDescriptor
}

// DefaultGenerics builds the generic set for the built-in categories:
// Home, Listing, Detail and New.
func DefaultGenerics() *GenericSet {
	g := &GenericSet{categories: make(map[string]*genericDescriptor)}

	g.Add(CategoryHome, builtinPatterns["home"], navigateHome, nil)
	g.Add(CategoryListing, builtinPatterns["listing"], navigateListing, map[string]Operation{
		"open_item": opOpenItem,
	})
	g.Add(CategoryDetail, builtinPatterns["detail"], navigateDetail, map[string]Operation{
		"get_current_record_id": opCurrentRecordID,
		"delete_current_record": opDeleteCurrentRecord,
	})
	g.Add(CategoryNew, builtinPatterns["new"], navigateNew, map[string]Operation{
		"close_modal": opCloseModal,
	})
	return g
}

// Add registers a generic descriptor for a category, replacing any
// existing one. Hosts use this to extend the built-in archetypes.
// Specific descriptors in a host-added category should declare their
// own Matcher; the package-default pattern table only knows the
// built-in categories.
func (g *GenericSet) Add(category, pattern string, navigate NavigateFunc, keywords map[string]Operation) {
	merged := map[string]Operation{
		"go_to":                   opGoTo,
		"current_location":        opCurrentLocation,
		"location_should_contain": opLocationShouldContain,
	}
	for name, op := range keywords {
		merged[NormalizeKeyword(name)] = op
	}
	g.categories[normalizeCategory(category)] = &genericDescriptor{
		category: category,
		pattern:  pattern,
		navigate: navigate,
		keywords: merged,
	}
}

// Fallback returns the generic descriptor for a category. The second
// return is false when the category is unrecognized; there is no
// generic default for arbitrary categories.
func (g *GenericSet) Fallback(category string) (Descriptor, bool) {
	desc, ok := g.categories[normalizeCategory(category)]
	if !ok {
		return nil, false
	}
	return desc, true
}

// Categories returns the sorted category names with a generic default.
func (g *GenericSet) Categories() []string {
	names := make([]string, 0, len(g.categories))
	for _, desc := range g.categories {
		names = append(names, desc.category)
	}
	sort.Strings(names)
	return names
}

// genericDescriptor is the built-in descriptor variant. One exists per
// category; subject binding happens at resolution time.
type genericDescriptor struct {
	category string
	pattern  string
	navigate NavigateFunc
	keywords map[string]Operation
}

func (g *genericDescriptor) Category() string { return g.category }

// Subject is empty: generics are keyed by category alone.
func (g *genericDescriptor) Subject() string { return "" }

func (g *genericDescriptor) Keywords() []string {
	return sortedKeywordNames(g.keywords)
}

func (g *genericDescriptor) Matches(subject, location string) bool {
	return matchLocation(g.pattern, subject, location)
}

func (g *genericDescriptor) Instantiate(subject string, caps capability.Set) *PageObject {
	return &PageObject{
		category:   g.category,
		subject:    subject,
		caps:       caps,
		keywords:   g.keywords,
		navigate:   g.navigate,
		descriptor: g,
	}
}

// objectURL joins the base URL with a lightning-style object path.
func objectURL(base string, parts ...string) string {
	return strings.TrimRight(base, "/") + "/lightning/" + strings.Join(parts, "/")
}

func navigateHome(ctx context.Context, p *PageObject, args ...string) error {
	return p.caps.Browser.GoTo(ctx, objectURL(p.caps.BaseURL, "o", p.subject, "home"))
}

func navigateListing(ctx context.Context, p *PageObject, args ...string) error {
	target := objectURL(p.caps.BaseURL, "o", p.subject, "list")
	kwargs, _ := ParseArgs(args)
	if filter := kwargs["filter_name"]; filter != "" {
		target += "?filterName=" + url.QueryEscape(filter)
	}
	return p.caps.Browser.GoTo(ctx, target)
}

func navigateDetail(ctx context.Context, p *PageObject, args ...string) error {
	kwargs, positional := ParseArgs(args)
	id := kwargs["id"]
	if id == "" && len(positional) > 0 {
		id = positional[0]
	}
	if id == "" {
		return fmt.Errorf("a record id is required to go to the %s page for %s", p.category, p.subject)
	}
	return p.caps.Browser.GoTo(ctx, objectURL(p.caps.BaseURL, "r", p.subject, id, "view"))
}

func navigateNew(ctx context.Context, p *PageObject, args ...string) error {
	return p.caps.Browser.GoTo(ctx, objectURL(p.caps.BaseURL, "o", p.subject, "new"))
}

// opGoTo navigates to the page the object is bound to, so navigation is
// dispatchable as a keyword of the active page object too.
func opGoTo(ctx context.Context, p *PageObject, args ...string) (string, error) {
	return "", p.Navigate(ctx, args...)
}

func opCurrentLocation(ctx context.Context, p *PageObject, args ...string) (string, error) {
	return p.caps.Browser.CurrentLocation(ctx)
}

func opLocationShouldContain(ctx context.Context, p *PageObject, args ...string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("location should contain takes exactly one argument")
	}
	location, err := p.caps.Browser.CurrentLocation(ctx)
	if err != nil {
		return "", err
	}
	if !strings.Contains(location, args[0]) {
		return "", fmt.Errorf("location %q does not contain %q", location, args[0])
	}
	return location, nil
}

// opOpenItem clicks the listing row link whose title is the given label.
func opOpenItem(ctx context.Context, p *PageObject, args ...string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("open item takes exactly one argument, the item label")
	}
	selector := fmt.Sprintf("a[title=%q]", args[0])
	if err := p.caps.Browser.WaitFor(ctx, selector); err != nil {
		return "", err
	}
	return "", p.caps.Browser.Click(ctx, selector)
}

// opCurrentRecordID parses the record id out of the current location.
func opCurrentRecordID(ctx context.Context, p *PageObject, args ...string) (string, error) {
	location, err := p.caps.Browser.CurrentLocation(ctx)
	if err != nil {
		return "", err
	}
	id := recordIDFromLocation(location)
	if id == "" {
		return "", fmt.Errorf("could not parse record id from location %q", location)
	}
	return id, nil
}

// opDeleteCurrentRecord deletes the record shown on the current detail
// page through the domain API.
func opDeleteCurrentRecord(ctx context.Context, p *PageObject, args ...string) (string, error) {
	id, err := opCurrentRecordID(ctx, p)
	if err != nil {
		return "", err
	}
	if err := p.caps.API.DeleteRecord(ctx, p.subject, id); err != nil {
		return "", err
	}
	return id, nil
}

func opCloseModal(ctx context.Context, p *PageObject, args ...string) (string, error) {
	return "", p.caps.Browser.Click(ctx, "button[title='Cancel']")
}
