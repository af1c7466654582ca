// Package main provides the entry point for the fade CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/fade/cmd/fade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
