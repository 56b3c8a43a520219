// Package main provides the entry point for the zonediff CLI.
package main

import (
	"fmt"
	"os"

	"go-zone-diff/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
