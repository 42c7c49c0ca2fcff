package main

import (
	"os"

	"github.com/tdsproject/deployment-smoke-tests/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
