package main

import (
	"os"

	"github.com/mmynk/producttracker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
