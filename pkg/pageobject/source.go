package pageobject

// Source is a definition source: a named collection of page-object
// definitions the loader walks at suite start. The name identifies the
// source in load errors and logs, typically the package or file the
// definitions live in.
type Source interface {
	Name() string
	Definitions() []*Definition
}

// NewSource groups definitions under a name. This is the usual way to
// assemble a source:
//
//	var Pages = pageobject.NewSource("robot/IslandPages",
//		pageobject.Define("Listing", "Island__c").
//			Keyword("Open Tropical Filter", openTropical),
//	)
func NewSource(name string, definitions ...*Definition) Source {
	return &literalSource{name: name, definitions: definitions}
}

type literalSource struct {
	name        string
	definitions []*Definition
}

func (s *literalSource) Name() string              { return s.name }
func (s *literalSource) Definitions() []*Definition { return s.definitions }

// SourceFunc adapts a function to the Source interface, for sources
// whose definitions are built on demand.
type SourceFunc struct {
	SourceName string
	Build      func() []*Definition
}

func (s SourceFunc) Name() string { return s.SourceName }

func (s SourceFunc) Definitions() []*Definition {
	if s.Build == nil {
		return nil
	}
	return s.Build()
}
