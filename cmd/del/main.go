package main

import (
	"os"

	"github.com/danieljhkim/humanutils/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Run("del", os.Args[1:], cli.DefaultStreams(), version))
}
