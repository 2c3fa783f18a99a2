package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestRunVersion(t *testing.T) {
	for _, arg := range []string{"version", "--version", "-v"} {
		out := captureStdout(t)
		if err := run([]string{arg}); err != nil {
			t.Fatalf("run(%q): %v", arg, err)
		}
		if !strings.Contains(out.String(), "nativeui version "+Version) {
			t.Errorf("run(%q) output = %q", arg, out.String())
		}
	}
}

func TestRunHelpListsCommands(t *testing.T) {
	out := captureStdout(t)
	if err := run(nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"replay", "config", "probe", "version"} {
		if !strings.Contains(out.String(), "  "+name) {
			t.Errorf("help does not list %q", name)
		}
	}
}

func TestRunCommandHelp(t *testing.T) {
	out := captureStdout(t)
	if err := run([]string{"replay", "--help"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "nativeui replay") {
		t.Errorf("replay help = %q", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	captureStdout(t)
	if err := run([]string{"bogus"}); err == nil {
		t.Error("expected error for unknown command")
	}
}
