package main

import (
	"os"

	"github.com/alc-ux/plugman/cmd/plugman/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
