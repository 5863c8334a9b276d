// ABOUTME: Entry point for the padbankctl CLI
// ABOUTME: Ingests samples and drives a running machine over its control surface
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
