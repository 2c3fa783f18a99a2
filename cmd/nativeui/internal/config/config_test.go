package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProject(t *testing.T, modPath string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	mod := "module " + modPath + "\n\ngo 1.24\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(mod), 0o644); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestResolveDefaults(t *testing.T) {
	dir := writeProject(t, "github.com/acme/Shop-App", nil)

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.AppName != "Shop-App" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.AppID != "com.github.acme.shopapp" {
		t.Errorf("AppID = %q", cfg.AppID)
	}
	if cfg.EventsChannel != DefaultEventsChannel {
		t.Errorf("EventsChannel = %q", cfg.EventsChannel)
	}
	if cfg.Strict || cfg.Verbose || cfg.HostLibrary != "" {
		t.Errorf("unexpected non-default values: %+v", cfg)
	}
}

func TestResolveYAML(t *testing.T) {
	dir := writeProject(t, "example.com/demo", map[string]string{
		YAMLFile: `app:
  name: Demo
  id: com.example.demo
dispatcher:
  strict: true
errors:
  verbose: true
host:
  library: lib/libhost.so
  events_channel: demo/events
`,
	})

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Source != filepath.Join(dir, YAMLFile) {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.AppName != "Demo" || cfg.AppID != "com.example.demo" {
		t.Errorf("app = %q %q", cfg.AppName, cfg.AppID)
	}
	if !cfg.Strict || !cfg.Verbose {
		t.Errorf("strict/verbose not applied: %+v", cfg)
	}
	if cfg.HostLibrary != filepath.Join(dir, "lib", "libhost.so") {
		t.Errorf("HostLibrary = %q", cfg.HostLibrary)
	}
	if cfg.EventsChannel != "demo/events" {
		t.Errorf("EventsChannel = %q", cfg.EventsChannel)
	}
}

func TestResolveTOML(t *testing.T) {
	dir := writeProject(t, "example.com/demo", map[string]string{
		TOMLFile: `[app]
id = "org.demo.app"

[dispatcher]
strict = true

[host]
library = "/opt/host/libhost.so"
`,
	})

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Source != filepath.Join(dir, TOMLFile) {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.AppName != "demo" || cfg.AppID != "org.demo.app" {
		t.Errorf("app = %q %q", cfg.AppName, cfg.AppID)
	}
	if !cfg.Strict {
		t.Error("strict not applied")
	}
	if cfg.HostLibrary != "/opt/host/libhost.so" {
		t.Errorf("HostLibrary = %q", cfg.HostLibrary)
	}
}

func TestYAMLTakesPrecedence(t *testing.T) {
	dir := writeProject(t, "example.com/demo", map[string]string{
		YAMLFile: "app:\n  name: fromyaml\n",
		TOMLFile: "[app]\nname = \"fromtoml\"\n",
	})
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AppName != "fromyaml" {
		t.Errorf("AppName = %q, want fromyaml", cfg.AppName)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"bad yaml", map[string]string{YAMLFile: "app: [\n"}, "failed to parse nativeui.yaml"},
		{"bad toml", map[string]string{TOMLFile: "[app\n"}, "failed to parse nativeui.toml"},
		{"bad id", map[string]string{YAMLFile: "app:\n  id: nodots\n"}, "at least one '.'"},
		{"digit id", map[string]string{YAMLFile: "app:\n  id: com.1app\n"}, "cannot start with a digit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeProject(t, "example.com/demo", tt.files)
			_, err := Resolve(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Resolve error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestResolveWithoutGoMod(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Error("expected error without go.mod")
	}
}

func TestFindRoot(t *testing.T) {
	dir := writeProject(t, "example.com/demo", nil)
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := findRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("findRoot = %q, want %q", got, dir)
	}
}

func TestDefaultAppID(t *testing.T) {
	tests := []struct {
		module, name, want string
	}{
		{"github.com/acme/shop", "shop", "com.github.acme.shop"},
		{"github.com/acme/shop/v2", "shop", "com.github.acme.shop.v2"},
		{"localmod", "My App", "com.example.myapp"},
		{"example.com/9lives", "9lives", "com.example.a9lives"},
	}
	for _, tt := range tests {
		if got := defaultAppID(tt.module, tt.name); got != tt.want {
			t.Errorf("defaultAppID(%q) = %q, want %q", tt.module, got, tt.want)
		}
		if err := validateAppID(defaultAppID(tt.module, tt.name)); err != nil {
			t.Errorf("defaultAppID(%q) produced invalid id: %v", tt.module, err)
		}
	}
}
