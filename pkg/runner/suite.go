package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Suite is a parsed suite file: a name and an ordered list of keyword
// steps.
type Suite struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is a single keyword invocation.
type Step struct {
	Keyword string   `yaml:"keyword"`
	Args    []string `yaml:"args,omitempty"`
}

// LoadSuite reads a suite file.
//
//	name: island smoke
//	steps:
//	  - keyword: Go To Page
//	    args: [Listing, Island__c]
//	  - keyword: Current Page Should Be
//	    args: [Listing, Island__c]
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", path, err)
	}
	if len(suite.Steps) == 0 {
		return nil, fmt.Errorf("suite file %s has no steps", path)
	}
	for i, step := range suite.Steps {
		if step.Keyword == "" {
			return nil, fmt.Errorf("suite file %s: step %d has no keyword", path, i+1)
		}
	}
	return &suite, nil
}
