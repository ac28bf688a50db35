// Package main provides the entry point for the solgo CLI.
package main

import (
	"fmt"
	"os"

	"github.com/solgo-dev/solgo/cmd/solgo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
