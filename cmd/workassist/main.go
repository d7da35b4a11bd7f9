package main

import (
	"os"

	"github.com/nightrabbit666/workassist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
