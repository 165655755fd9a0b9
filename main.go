package main

import (
	"os"

	"github.com/abhisek/quizflip/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
