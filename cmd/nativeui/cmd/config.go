package cmd

import (
	"fmt"

	"github.com/go-drift/nativeui/cmd/nativeui/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show the resolved configuration",
		Long: `Show the project configuration after defaults are applied.

Settings come from nativeui.yaml, or nativeui.toml when no YAML file
exists, in the directory holding go.mod. Missing values are derived from
the module path.`,
		Usage: "nativeui config",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfig(cfg)
	return nil
}

func printConfig(cfg *config.Resolved) {
	source := cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	library := cfg.HostLibrary
	if library == "" {
		library = "(none)"
	}

	fmt.Fprintf(stdout, "Project:    %s\n", cfg.Root)
	fmt.Fprintf(stdout, "Source:     %s\n", source)
	fmt.Fprintf(stdout, "Module:     %s\n", cfg.ModulePath)
	fmt.Fprintf(stdout, "App:        %s (%s)\n", cfg.AppName, cfg.AppID)
	fmt.Fprintf(stdout, "Strict:     %t\n", cfg.Strict)
	fmt.Fprintf(stdout, "Verbose:    %t\n", cfg.Verbose)
	fmt.Fprintf(stdout, "Library:    %s\n", library)
	fmt.Fprintf(stdout, "Events:     %s\n", cfg.EventsChannel)
}
