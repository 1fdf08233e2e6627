// Package main provides the CLI for the OfficeHoursQ landing server.
package main

import (
	"os"

	"github.com/officehoursq/officehoursq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
