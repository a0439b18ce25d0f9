package main

import (
	"fmt"
	"os"

	"interview-pipeline/cmd/worker/cmd"
	"interview-pipeline/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
