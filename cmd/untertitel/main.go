package main

import (
	"os"

	"github.com/untertitel/untertitel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
