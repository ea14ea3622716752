// Package main is the entry point for the recenttests CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/recenttests/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
