package main

import (
	"os"

	"github.com/sharanb/careerforge-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
