// Command hospitalctl is the operator CLI for the hospital auth service. It
// keeps its session in a local file cache and talks to MongoDB directly.
package main

import (
	"fmt"
	"os"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	a := newApp()
	cmd := newRootCmd(a)
	cmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := a.execute(cmd); err != nil {
		os.Exit(1)
	}
}
