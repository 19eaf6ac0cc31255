package pageobject

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/entrhq/pagekit/pkg/logging"
)

// registryKey identifies a specific descriptor: normalized category plus
// the namespace-qualified subject.
type registryKey struct {
	category string
	subject  string
}

// Registry is the table of specific page-object descriptors for one
// suite run. It is built once by Load before any test executes and is
// read-only afterwards; entries are never removed, and re-registering a
// (category, subject) pair is a collision regardless of which source it
// comes from.
//
// Each run builds its own Registry, so concurrent runs in one process
// never share mutable state.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[registryKey]*specificDescriptor
	namespace   string
	log         *logging.Logger
}

// NewRegistry creates an empty registry. namespace, when non-empty, is
// the project namespace prefix applied to unqualified custom subjects
// at load and lookup time.
func NewRegistry(namespace string) *Registry {
	return &Registry{
		descriptors: make(map[registryKey]*specificDescriptor),
		namespace:   strings.TrimSuffix(namespace, "__"),
		log:         logging.Discard(),
	}
}

// SetLogger replaces the registry's logger. Intended to be called once,
// before Load.
func (r *Registry) SetLogger(log *logging.Logger) {
	if log != nil {
		r.log = log
	}
}

// Load walks each source's definitions and registers them. The whole
// call is atomic: any malformed definition or (category, subject)
// collision returns a LoadError and leaves the registry exactly as it
// was, including entries from earlier sources in the same call. Loading
// with no sources is valid and registers nothing.
func (r *Registry) Load(sources ...Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stage into a copy, commit on success.
	staged := make(map[registryKey]*specificDescriptor, len(r.descriptors))
	for key, desc := range r.descriptors {
		staged[key] = desc
	}

	for _, source := range sources {
		for _, definition := range source.Definitions() {
			if definition == nil {
				return &LoadError{Source: source.Name(), Err: fmt.Errorf("nil definition")}
			}
			desc, err := definition.build(r.Qualify(definition.subject))
			if err != nil {
				return &LoadError{Source: source.Name(), Err: err}
			}
			key := registryKey{normalizeCategory(desc.category), desc.subject}
			if _, exists := staged[key]; exists {
				return &LoadError{
					Source: source.Name(),
					Err:    fmt.Errorf("page object %s/%s is already registered", desc.category, desc.subject),
				}
			}
			staged[key] = desc
			r.log.Debugf("registered page object %s/%s from %s", desc.category, desc.subject, source.Name())
		}
	}

	r.descriptors = staged
	return nil
}

// Get returns the specific descriptor for the pair, if one was loaded.
// The subject is qualified with the project namespace first, the same
// way Load qualifies it.
func (r *Registry) Get(category, subject string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.descriptors[registryKey{normalizeCategory(category), r.Qualify(subject)}]
	if !ok {
		return nil, false
	}
	return desc, true
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

// Entries returns all registered descriptors sorted by category then
// subject, for logging and documentation.
func (r *Registry) Entries() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Descriptor, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		entries = append(entries, desc)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category() != entries[j].Category() {
			return entries[i].Category() < entries[j].Category()
		}
		return entries[i].Subject() < entries[j].Subject()
	})
	return entries
}

// Qualify applies the project namespace to a subject. Only custom-style
// subjects (carrying a "__" suffix separator, e.g. Island__c) are
// prefixed, and only when they do not already carry a namespace
// segment. Plain subjects like Contact pass through untouched.
func (r *Registry) Qualify(subject string) string {
	if r.namespace == "" || !strings.Contains(subject, "__") {
		return subject
	}
	if strings.Count(subject, "__") >= 2 {
		return subject // already qualified
	}
	return r.namespace + "__" + subject
}
