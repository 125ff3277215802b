package main

import (
	"os"

	"github.com/msto63/hcmd/cmd/hcmd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
