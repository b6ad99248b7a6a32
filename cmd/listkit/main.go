// Command listkit browses and simulates incrementally rendered lists.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/listkit/internal/cli"
	"github.com/rshade/listkit/pkg/version"
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
