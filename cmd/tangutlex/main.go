package main

import (
	"os"

	"tangutlex/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
