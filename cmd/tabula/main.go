// Package main provides the tabula CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/tabula/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
