// Command jsondb is a single-user record store for a library lending
// catalog kept in a JSON document.
package main

import (
	"context"
	"os"

	"github.com/roach88/jsondb/internal/cli"
)

func mainImpl() error {
	return cli.NewRootCommand().ExecuteContext(context.Background())
}

func main() {
	// Commands report their own errors; only the exit code is left.
	if err := mainImpl(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
