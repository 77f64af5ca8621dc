// Package main is the entry point for the yatractl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/kailas-cloud/yatra/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "yatractl:", err)
		os.Exit(1)
	}
}
