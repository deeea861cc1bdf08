package main

import (
	"os"

	"github.com/shadowCow/lexparse-go/internal/runner"
)

func main() {
	opts := runner.ParseFlags()
	if err := runner.Run(opts, os.Stdout); err != nil {
		os.Exit(1)
	}
}
