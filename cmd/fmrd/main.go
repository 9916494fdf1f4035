// Command fmrd is the football match result database entry tool.
package main

import (
	"os"

	"github.com/mesh-intelligence/fmrd/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
