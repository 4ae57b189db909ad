package main

import (
	"os"

	"abrvalg/interpreter-go/cmd/abrvalg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
