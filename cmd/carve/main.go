// Package main is the entry point for the carve CLI tool.
package main

import (
	"github.com/anthropics/carve/internal/cmd"
)

func main() {
	cmd.Execute()
}
