package main

import (
	"os"

	"github.com/appclacks/datto-monitor/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
