package pageobject

import "fmt"

// LoadError reports a definition source that could not be registered:
// a malformed definition, or a (category, subject) collision with a
// previously loaded descriptor. A LoadError is fatal to suite start and
// leaves the registry unchanged.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("page object load failed: %v", e.Err)
	}
	return fmt.Sprintf("page object load failed for source %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ResolutionError reports that neither a specific descriptor nor a
// generic fallback exists for a requested (category, subject) pair.
// It fails the keyword call, not the run.
type ResolutionError struct {
	Category string
	Subject  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no page object for %s/%s", e.Category, e.Subject)
}

// DispatchError reports a keyword name that is neither a core keyword
// nor an operation of the active page object. It is distinct from
// internal errors so the host can report it as an unknown-keyword
// failure.
type DispatchError struct {
	Operation string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Operation)
}

// MismatchError reports that the browser's current location does not
// match the expected pattern for a page object. It is an ordinary
// assertion-style failure; the caller decides whether to fail the test.
type MismatchError struct {
	Category string
	Subject  string
	Location string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("location %q does not match the %s page for %s",
		e.Location, e.Category, e.Subject)
}
