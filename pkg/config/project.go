// Package config loads the pagekit project file: the org base URL the
// suite runs against, the project namespace applied to custom subjects,
// and collaborator settings for the record API and the browser.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project file looked up when no path is given.
const DefaultFileName = "pagekit.yaml"

// Project is the parsed project configuration.
type Project struct {
	Name      string  `yaml:"name"`
	BaseURL   string  `yaml:"base_url"`
	Namespace string  `yaml:"namespace,omitempty"`
	API       API     `yaml:"api"`
	Browser   Browser `yaml:"browser"`
}

// API configures the record API client.
type API struct {
	URL     string `yaml:"url,omitempty"`
	Version string `yaml:"version,omitempty"`
	Token   string `yaml:"token,omitempty"`
}

// Browser configures the automation driver.
type Browser struct {
	Headless  bool    `yaml:"headless"`
	TimeoutMs float64 `yaml:"timeout_ms,omitempty"`
}

// Default returns the configuration used when a field is absent from
// the project file.
func Default() *Project {
	return &Project{
		Name: "pagekit",
		Browser: Browser{
			Headless: true,
		},
	}
}

// Load reads and validates a project file. Fields not present in the
// file keep their defaults.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	project := Default()
	if err := yaml.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", path, err)
	}
	return project, nil
}

// Validate checks the fields the core cannot run without.
func (p *Project) Validate() error {
	if p.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}

// Save writes the configuration back to disk.
func (p *Project) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode project file: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// APIBase returns the record API base URL, defaulting to the org base
// URL when the api section does not set its own.
func (p *Project) APIBase() string {
	if p.API.URL != "" {
		return p.API.URL
	}
	return p.BaseURL
}
