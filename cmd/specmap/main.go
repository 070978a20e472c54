// Package main is the entry point for the specmap CLI tool.
package main

import (
	"github.com/hargabyte/specmap/internal/cmd"
)

func main() {
	cmd.Execute()
}
