// Package main provides the backoffice CLI.
package main

import "github.com/mesh-intelligence/backoffice/internal/cli"

func main() {
	cli.Execute()
}
