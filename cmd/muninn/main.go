// Package main is the entry point for the muninn CLI tool.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/muninn-kg/muninn/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
