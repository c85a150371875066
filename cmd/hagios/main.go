package main

import (
	"os"

	"github.com/abhisek/hagios/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
