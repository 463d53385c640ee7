// Package main is the entry point for leadctl, the terminal companion of the
// lead capture site.
//
// Commands: wizard, token, leads list.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/wolfman30/supplychain-leads/cmd/leadctl/commands"
)

func main() {
	_ = godotenv.Load()
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
