package main

import (
	"os"

	"github.com/abhisek/venusquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
