// cmd/devdocs/main.go
//
// Entry point for the devdocs CLI. The binary is meant to live in
// <skill_dir>/scripts/ next to the skill's assets/templates directory.

package main

import (
	"os"

	"github.com/kingrea/devdocs/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
