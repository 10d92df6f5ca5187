package main

import (
	"os"

	"github.com/lumilearn/lumi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
