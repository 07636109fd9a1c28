package main

import (
	"os"

	"github.com/ROHANDEV-web/school-assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
