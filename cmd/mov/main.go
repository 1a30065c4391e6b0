package main

import (
	"os"

	"github.com/danieljhkim/humanutils/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Run("mov", os.Args[1:], cli.DefaultStreams(), version))
}
