// Package config loads the optional nativeui.yaml or nativeui.toml project
// file and fills in defaults derived from go.mod.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// File names searched in the project root, in order.
const (
	YAMLFile = "nativeui.yaml"
	TOMLFile = "nativeui.toml"
)

// DefaultEventsChannel is the host channel carrying the event stream when
// host.events_channel is unset.
const DefaultEventsChannel = "nativeui/events"

// Config represents the optional project configuration.
type Config struct {
	App        AppConfig        `yaml:"app" toml:"app"`
	Dispatcher DispatcherConfig `yaml:"dispatcher" toml:"dispatcher"`
	Errors     ErrorsConfig     `yaml:"errors" toml:"errors"`
	Host       HostConfig       `yaml:"host" toml:"host"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	ID   string `yaml:"id,omitempty" toml:"id,omitempty"`
}

// DispatcherConfig tunes the widget manager.
type DispatcherConfig struct {
	Strict bool `yaml:"strict,omitempty" toml:"strict,omitempty"`
}

// ErrorsConfig tunes the error log handler.
type ErrorsConfig struct {
	Verbose bool `yaml:"verbose,omitempty" toml:"verbose,omitempty"`
}

// HostConfig describes how to reach the native host.
type HostConfig struct {
	Library       string `yaml:"library,omitempty" toml:"library,omitempty"`
	EventsChannel string `yaml:"events_channel,omitempty" toml:"events_channel,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	Source        string
	ModulePath    string
	AppName       string
	AppID         string
	Strict        bool
	Verbose       bool
	HostLibrary   string
	EventsChannel string
}

// LoadOptional reads nativeui.yaml, or nativeui.toml when there is no YAML
// file. It returns the parsed config and the path it came from; with
// neither file present the config is empty and the path is "".
func LoadOptional(dir string) (*Config, string, error) {
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
		}

		cfg, err := parse(name, data)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return &Config{}, "", nil
}

func parse(name string, data []byte) (*Config, error) {
	var cfg Config
	var err error
	switch filepath.Ext(name) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return &cfg, nil
}

// Resolve loads the project configuration (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}
	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	library := strings.TrimSpace(cfg.Host.Library)
	if library != "" && !filepath.IsAbs(library) {
		library = filepath.Join(dir, library)
	}

	events := strings.TrimSpace(cfg.Host.EventsChannel)
	if events == "" {
		events = DefaultEventsChannel
	}

	return &Resolved{
		Root:          dir,
		Source:        source,
		ModulePath:    modulePath,
		AppName:       appName,
		AppID:         appID,
		Strict:        cfg.Dispatcher.Strict,
		Verbose:       cfg.Errors.Verbose,
		HostLibrary:   library,
		EventsChannel: events,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findRoot(dir)
}

func findRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	if err := module.CheckImportPath(path); err != nil {
		return "", fmt.Errorf("invalid module path in go.mod: %w", err)
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok {
		if i := strings.LastIndex(modName, "/"); i >= 0 {
			base = modName[i+1:]
		} else {
			base = modName
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "nativeui_app"
	}
	return base
}

// defaultAppID turns github.com/acme/shop into com.github.acme.shop.
func defaultAppID(modulePath, appName string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return "com.example." + sanitizeSegment(appName)
	}

	host := strings.Split(parts[0], ".")
	for i, j := 0, len(host)-1; i < j; i, j = i+1, j-1 {
		host[i], host[j] = host[j], host[i]
	}

	segments := host
	for _, p := range parts[1:] {
		if p != "" {
			segments = append(segments, p)
		}
	}
	for i, s := range segments {
		segments[i] = sanitizeSegment(s)
	}
	return strings.Join(segments, ".")
}

// sanitizeSegment lowercases s and keeps only characters valid in an
// application id segment. Segments never start with a digit.
func sanitizeSegment(s string) string {
	var out []rune
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	if len(out) == 0 || out[0] == '_' {
		out = append([]rune("app"), out...)
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = append([]rune{'a'}, out...)
	}
	return string(out)
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	for _, segment := range strings.Split(appID, ".") {
		if segment == "" {
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		}
		if segment[0] == '_' {
			return fmt.Errorf("app.id segments cannot start with '_' (%q)", appID)
		}
		for _, r := range segment {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}
