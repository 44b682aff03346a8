package main

import (
	"fmt"
	"os"

	"github.com/vibe-x-ai/discuss-skills/cmd/discuss-skills/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
