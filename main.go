package main

import (
	"os"

	"github.com/RahulMirji/Resume-Screener/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
