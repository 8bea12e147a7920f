// Package main is the entry point for the marketplace gateway.
package main

import (
	"os"

	"github.com/donaldgifford/marketplace-gateway/cmd/marketplace-gateway/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
