// Package main provides the turbts CLI tool for inspecting, verifying,
// and producing full-field time-series (.bts) wind files.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
