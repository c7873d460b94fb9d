package main

import (
	"os"

	"github.com/phm-tools/rulkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
