// Package main is the entry point for the billpe operator CLI.
package main

import (
	"os"

	"github.com/Ananth-NQI/billpe-backend/cmd/billpe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
