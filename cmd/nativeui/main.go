// Command nativeui inspects project configuration and replays host event
// traces through the widget dispatcher.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/nativeui/cmd/nativeui/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
