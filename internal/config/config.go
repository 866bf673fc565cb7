// internal/config/config.go
//
// This package handles configuration and the .campaigndeck directory
// structure. Every project that uses CampaignDeck gets a .campaigndeck/
// folder created in its root; the only durable setting is the per-automation
// webhook URL override.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppDir is the name of the directory we create in each project.
const AppDir = ".campaigndeck"

const defaultProjectConfigYAML = `# campaigndeck project configuration
version: 1

# Per-automation webhook URL overrides. When an automation has no entry here
# its compiled-in default URL is used.
webhooks: {}
`

// ProjectConfig models .campaigndeck/config.yaml.
type ProjectConfig struct {
	Version  int               `yaml:"version"`
	Webhooks map[string]string `yaml:"webhooks"`
}

// Config holds the runtime configuration for CampaignDeck.
type Config struct {
	// ProjectDir is the directory where the user ran `campaigndeck` from.
	ProjectDir string

	// AppProjectDir is ProjectDir/.campaigndeck.
	AppProjectDir string

	Project ProjectConfig
}

// InitAppDir creates the .campaigndeck directory structure in the given
// project directory. Called when the TUI starts up.
//
// Structure created:
// .campaigndeck/
// ├── logs/         <- session logbook
// ├── reports/      <- exported PDF reports
// └── config.yaml   <- webhook URL overrides
func InitAppDir(projectDir string) error {
	appDir := filepath.Join(projectDir, AppDir)
	dirs := []string{
		filepath.Join(appDir, "logs"),
		filepath.Join(appDir, "reports"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(appDir, "config.yaml"))
}

// NewConfig creates a Config populated with project settings. A missing or
// unreadable config file is not an error: webhook lookups simply fall back
// to the compiled-in defaults.
func NewConfig(projectDir string) *Config {
	cfg := &Config{
		ProjectDir:    projectDir,
		AppProjectDir: filepath.Join(projectDir, AppDir),
		Project:       defaultProjectConfig(),
	}
	cfg.loadProjectConfig()
	return cfg
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.AppProjectDir, "logs")
}

// ReportsDir returns the directory exported PDFs are written to.
func (c *Config) ReportsDir() string {
	return filepath.Join(c.AppProjectDir, "reports")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.AppProjectDir, "config.yaml")
}

// WebhookURL resolves the webhook URL for an automation: the stored override
// when set, otherwise the automation's compiled-in default.
func (c *Config) WebhookURL(slug, fallback string) string {
	if c != nil {
		if url := strings.TrimSpace(c.Project.Webhooks[slug]); url != "" {
			return url
		}
	}
	return fallback
}

// HasWebhookOverride reports whether an explicit URL is stored for the
// automation.
func (c *Config) HasWebhookOverride(slug string) bool {
	if c == nil {
		return false
	}
	return strings.TrimSpace(c.Project.Webhooks[slug]) != ""
}

// SetWebhookURL stores (or, with an empty URL, clears) the webhook override
// for an automation and persists the config file.
func (c *Config) SetWebhookURL(slug, url string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return fmt.Errorf("config: automation slug is required")
	}
	if c.Project.Webhooks == nil {
		c.Project.Webhooks = map[string]string{}
	}
	url = strings.TrimSpace(url)
	if url == "" {
		delete(c.Project.Webhooks, slug)
	} else {
		c.Project.Webhooks[slug] = url
	}
	return c.saveProjectConfig()
}

// loadProjectConfig reads config.yaml if it exists. Read and parse failures
// are swallowed: the defaults apply and the session continues.
func (c *Config) loadProjectConfig() {
	data, err := os.ReadFile(c.ProjectConfigPath())
	if err != nil {
		return
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return
	}
	parsed.applyDefaults()
	c.Project = parsed
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:  1,
		Webhooks: map[string]string{},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Webhooks == nil {
		pc.Webhooks = map[string]string{}
	}
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	if err := os.MkdirAll(c.AppProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure app dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
