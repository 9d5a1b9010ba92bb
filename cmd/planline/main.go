// Package main is the entry point for the planline CLI.
package main

import "github.com/planline/planline/internal/cli"

func main() {
	cli.Execute()
}
