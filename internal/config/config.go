// internal/config/config.go
//
// This package handles configuration and the .taskdeck directory structure.
// Every directory taskdeck runs from gets a .taskdeck/ folder with the flat
// data files and a session log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/taskdeck/internal/record"
	"github.com/kingrea/taskdeck/internal/store"
)

const (
	// TaskdeckDir is the name of the directory we create in each project
	TaskdeckDir = ".taskdeck"

	defaultDataDir = "data"
)

const defaultConfigYAML = `# taskdeck configuration
version: 1

# Directory holding the flat data files, relative to .taskdeck/.
data_dir: data

# Accounts written into users.csv when the data files are first created.
# Users have no in-app lifecycle, so edit this list (or users.csv directly)
# to manage accounts. Passwords are stored in plain text.
seed_users:
  - code: 1
    name: Admin
    email: admin@taskdeck.local
    password: change-me
`

// SeedUser declares one account to write into a fresh users file.
type SeedUser struct {
	Code     int    `yaml:"code"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// FileConfig models .taskdeck/config.yaml.
type FileConfig struct {
	Version   int        `yaml:"version"`
	DataDir   string     `yaml:"data_dir"`
	SeedUsers []SeedUser `yaml:"seed_users"`
}

// Config holds the runtime configuration for taskdeck.
type Config struct {
	// ProjectDir is the directory where the user ran `taskdeck` from
	ProjectDir string

	// DeckDir is ProjectDir/.taskdeck
	DeckDir string

	File FileConfig
}

// NewConfig creates a Config populated from .taskdeck/config.yaml, falling
// back to defaults when the file is absent.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		DeckDir:    filepath.Join(projectDir, TaskdeckDir),
		File:       defaultFileConfig(),
	}
	if err := cfg.loadFileConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DataDir returns the directory holding the flat data files.
func (c *Config) DataDir() string {
	return filepath.Join(c.DeckDir, c.File.DataDir)
}

// LogsDir returns the path to the session log directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DeckDir, "logs")
}

// UsersPath returns the path to the users file.
func (c *Config) UsersPath() string {
	return filepath.Join(c.DataDir(), "users.csv")
}

// TasksPath returns the path to the tasks file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.DataDir(), "tasks.csv")
}

// LogsPath returns the path to the audit log file.
func (c *Config) LogsPath() string {
	return filepath.Join(c.DataDir(), "logs.csv")
}

// ConfigPath returns the on-disk location for the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.DeckDir, "config.yaml")
}

// InitDataDir creates the .taskdeck directory structure and, on first run,
// the data files with their header lines. users.csv is seeded from the
// config's seed_users so a fresh install has accounts to log in with.
//
// Structure created:
// .taskdeck/
// ├── config.yaml
// ├── data/
// │   ├── users.csv
// │   ├── tasks.csv
// │   └── logs.csv
// └── logs/         <- session diagnostics, not the audit log
func (c *Config) InitDataDir() error {
	dirs := []string{
		c.DataDir(),
		c.LogsDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}

	if err := ensureConfigFile(c.ConfigPath()); err != nil {
		return err
	}

	if err := ensureDataFile(c.UsersPath(), store.UserHeader, c.seedLines()); err != nil {
		return err
	}
	if err := ensureDataFile(c.TasksPath(), store.TaskHeader, nil); err != nil {
		return err
	}
	if err := ensureDataFile(c.LogsPath(), store.LogHeader, nil); err != nil {
		return err
	}
	return nil
}

func (c *Config) seedLines() []string {
	lines := make([]string, 0, len(c.File.SeedUsers))
	for _, u := range c.File.SeedUsers {
		lines = append(lines, record.Join(
			strconv.Itoa(u.Code), u.Name, u.Email, u.Password,
		))
	}
	return lines
}

func (c *Config) loadFileConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.File = parsed
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		DataDir: defaultDataDir,
		SeedUsers: []SeedUser{
			{Code: 1, Name: "Admin", Email: "admin@taskdeck.local", Password: "change-me"},
		},
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	fc.DataDir = strings.TrimSpace(fc.DataDir)
	if fc.DataDir == "" {
		fc.DataDir = defaultDataDir
	}
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if filepath.IsAbs(fc.DataDir) || strings.Contains(fc.DataDir, "..") {
		return fmt.Errorf("data_dir must be a relative path inside %s", TaskdeckDir)
	}
	seen := map[int]struct{}{}
	for i, u := range fc.SeedUsers {
		if u.Code <= 0 {
			return fmt.Errorf("seed_users[%d]: code must be a positive integer", i)
		}
		if _, dup := seen[u.Code]; dup {
			return fmt.Errorf("seed_users[%d]: duplicate code %d", i, u.Code)
		}
		seen[u.Code] = struct{}{}
		if strings.TrimSpace(u.Email) == "" {
			return fmt.Errorf("seed_users[%d]: email is required", i)
		}
		for field, value := range map[string]string{
			"name": u.Name, "email": u.Email, "password": u.Password,
		} {
			if strings.Contains(value, record.Delimiter) {
				return fmt.Errorf("seed_users[%d]: %s must not contain %q", i, field, record.Delimiter)
			}
		}
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

func ensureDataFile(path, header string, lines []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return record.WriteAll(path, header, lines)
}
