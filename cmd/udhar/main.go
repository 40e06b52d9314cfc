// Package main is the entry point for the udhar CLI.
package main

import (
	"os"

	"github.com/sheikh-saqib/udharbook/cmd/udhar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
