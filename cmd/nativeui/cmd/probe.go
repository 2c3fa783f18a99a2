package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/nativeui/cmd/nativeui/internal/config"
	"github.com/go-drift/nativeui/pkg/errors"
	"github.com/go-drift/nativeui/pkg/nativeui"
	"github.com/go-drift/nativeui/pkg/platform"
	"github.com/go-drift/nativeui/pkg/purchase"
	"github.com/go-drift/nativeui/pkg/widget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "probe",
		Short: "Probe a host library for native capabilities",
		Long: `Load a native host library and report which capabilities it offers.

The library path is taken from --library, or from host.library in the
project configuration. The probe creates and destroys a native screen to
check for Native UI, then asks the purchase service whether in-app
purchases are available.`,
		Usage: "nativeui probe [--library PATH]",
		Run:   runProbe,
	})
}

func runProbe(args []string) error {
	var library string
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--library":
			if i+1 >= len(args) {
				return fmt.Errorf("--library requires a path")
			}
			library = args[i+1]
			i++
		case strings.HasPrefix(arg, "--library="):
			library = strings.TrimPrefix(arg, "--library=")
		default:
			return fmt.Errorf("unexpected argument: %s", arg)
		}
	}

	if library == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return fmt.Errorf("--library is required outside a project")
		}
		cfg, err := config.Resolve(root)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		library = cfg.HostLibrary
	}
	if library == "" {
		return fmt.Errorf("no host library configured (set host.library or pass --library)")
	}

	bridge, err := platform.OpenLibraryBridge(library)
	if err != nil {
		return err
	}
	platform.SetNativeBridge(bridge)
	defer platform.SetNativeBridge(nil)

	fmt.Fprintf(stdout, "Host library: %s\n", bridge.Path())
	probe(stdout)
	return nil
}

// probe reports the capabilities of the installed native bridge.
func probe(w io.Writer) {
	mgr := nativeui.New(nil)
	defer mgr.Close()

	screen, err := widget.NewToolkit(mgr).NewScreen()
	switch {
	case stderrors.Is(err, errors.ErrCapabilityUnsupported):
		fmt.Fprintln(w, "Native UI:       unsupported")
	case err != nil:
		fmt.Fprintf(w, "Native UI:       error: %v\n", err)
	default:
		fmt.Fprintf(w, "Native UI:       supported (screen handle %d)\n", screen.Handle())
		if err := screen.Destroy(); err != nil {
			fmt.Fprintf(w, "                 destroy failed: %v\n", err)
		}
	}

	purchases := purchase.NewManager(nil)
	defer purchases.Close()
	switch ok, err := purchases.Supported(); {
	case err != nil:
		fmt.Fprintf(w, "In-app purchase: error: %v\n", err)
	case ok:
		fmt.Fprintln(w, "In-app purchase: supported")
	default:
		fmt.Fprintln(w, "In-app purchase: unsupported")
	}
}
