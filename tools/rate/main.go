package main

import (
	"os"

	"github.com/mekyu/rate-go/tools/rate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
