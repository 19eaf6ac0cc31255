// Package capability defines the boundary contracts between page objects
// and the facilities they are allowed to use: the keyword-execution host,
// the domain record API, and the browser automation layer.
//
// Page objects never discover these facilities through globals. A Set is
// injected into every page object when it is instantiated, so tests can
// substitute fakes for any of the three.
package capability

import "context"

// KeywordRunner gives page objects access to keywords defined by the
// surrounding test runner, by name. Names are matched after the same
// normalization the dispatcher applies (case-fold, spaces to underscores).
type KeywordRunner interface {
	RunKeyword(ctx context.Context, name string, args ...string) (string, error)
}

// Browser exposes the automation primitives page objects need. The
// implementation owns all timeout and retry policy; callers treat every
// method as a blocking call.
type Browser interface {
	// CurrentLocation returns the URL-like identifier of the current page.
	CurrentLocation(ctx context.Context) (string, error)

	// GoTo navigates to the given URL and waits for the page to load.
	GoTo(ctx context.Context, url string) error

	// Click clicks the first element matching the selector.
	Click(ctx context.Context, selector string) error

	// Fill sets the value of the input matching the selector.
	Fill(ctx context.Context, selector, value string) error

	// WaitFor blocks until an element matching the selector is visible.
	WaitFor(ctx context.Context, selector string) error

	// Text returns the visible text content of the element matching the
	// selector, or of the whole page when selector is empty.
	Text(ctx context.Context, selector string) (string, error)
}

// RecordAPI exposes record CRUD operations against the domain API.
// It is opaque to page-object resolution; only keyword implementations
// call it.
type RecordAPI interface {
	CreateRecord(ctx context.Context, recordType string, fields map[string]any) (string, error)
	GetRecord(ctx context.Context, recordType, id string) (map[string]any, error)
	UpdateRecord(ctx context.Context, recordType, id string, fields map[string]any) error
	DeleteRecord(ctx context.Context, recordType, id string) error
}

// Set bundles the shared facilities injected into every page object,
// plus the base URL pages are served from (used to compute navigation
// URLs for the built-in page archetypes).
type Set struct {
	Host    KeywordRunner
	API     RecordAPI
	Browser Browser
	BaseURL string
}
