package main

import (
	"os"

	"github.com/abhisek/storyquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
