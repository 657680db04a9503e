package main

import (
	"fmt"
	"os"

	"github.com/danmuck/phenopackets/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	root := newRootCommand(newState(os.Stdin, os.Stdout, os.Stderr))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "phenoctl: %v\n", err)
		os.Exit(1)
	}
}
