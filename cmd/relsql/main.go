// Package main provides the relsql command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/relsql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
