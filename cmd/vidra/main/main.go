package main

import (
	"fmt"
	"os"

	"github.com/vidra-player/vidra/cmd/vidra"
)

func main() {
	rootCmd := vidra.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
