// Package config resolves where bujo keeps its data and manages the
// ~/.bujorc settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stefanpenner/bujo/pkg/store"
	"gopkg.in/yaml.v3"
)

const (
	// RCFileName is the settings file in the home directory.
	RCFileName = ".bujorc"

	// EnvDir overrides the data directory.
	EnvDir = "BUJO_DIR"
)

// Config is the resolved configuration of one invocation.
type Config struct {
	Home    string `yaml:"-"`
	RCPath  string `yaml:"-"`
	DataDir string `yaml:"data_dir"`
}

// Load resolves the configuration for the current user. A non-empty dirFlag
// wins over everything else.
func Load(dirFlag string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	return LoadFrom(home, dirFlag)
}

// LoadFrom resolves the configuration relative to home.
//
// Data directory precedence: dirFlag, $BUJO_DIR, data_dir in ~/.bujorc,
// store.DefaultDataDir().
func LoadFrom(home, dirFlag string) (*Config, error) {
	cfg := &Config{
		Home:   home,
		RCPath: filepath.Join(home, RCFileName),
	}

	data, err := os.ReadFile(cfg.RCPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", cfg.RCPath, err)
	default:
		// JSON rc files from older versions parse as YAML too.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", cfg.RCPath, err)
		}
	}

	if dir := os.Getenv(EnvDir); dir != "" {
		cfg.DataDir = dir
	}
	if dirFlag != "" {
		cfg.DataDir = dirFlag
	}
	if cfg.DataDir == "" {
		cfg.DataDir = store.DefaultDataDir()
	}
	return cfg, nil
}

// Store returns the store for the configured data directory.
func (c *Config) Store() *store.Store {
	return store.NewStore(c.DataDir)
}

// Initialize writes ~/.bujorc and creates the data directory with an empty
// journal. Anything that already exists is reported and left alone.
func (c *Config) Initialize(w io.Writer) error {
	if _, err := os.Stat(c.RCPath); err == nil {
		fmt.Fprintf(w, "%s already exists\n", c.RCPath)
	} else {
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("serializing %s: %w", RCFileName, err)
		}
		if err := os.WriteFile(c.RCPath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", c.RCPath, err)
		}
		fmt.Fprintf(w, "Created %s\n", c.RCPath)
	}

	created, err := c.Store().Init()
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "Created data directory at %s\n", c.DataDir)
	} else {
		fmt.Fprintf(w, "Data directory %s already exists\n", c.DataDir)
	}
	return nil
}

// Clean removes ~/.bujorc and the data directory.
func (c *Config) Clean(w io.Writer) error {
	switch err := os.Remove(c.RCPath); {
	case err == nil:
		fmt.Fprintf(w, "Deleted %s\n", c.RCPath)
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(w, "No %s to delete\n", RCFileName)
	default:
		return fmt.Errorf("deleting %s: %w", c.RCPath, err)
	}

	if _, err := os.Stat(c.DataDir); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(w, "No data directory to delete")
		return nil
	}
	if err := os.RemoveAll(c.DataDir); err != nil {
		return fmt.Errorf("deleting %s: %w", c.DataDir, err)
	}
	fmt.Fprintf(w, "Deleted %s\n", c.DataDir)
	return nil
}
