package main

import (
	"os"

	"github.com/arloliu/flotsam/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
