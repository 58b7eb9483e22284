package main

import (
	"os"

	"github.com/wtsi-npg/simple-stats/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
