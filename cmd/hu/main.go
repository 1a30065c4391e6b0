package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/humanutils/internal/cli"
)

var version = "dev"

// hu runs as the tool it is named after, so it can be linked or copied to
// new, mov, del and the others.
func main() {
	name := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	if !cli.IsTool(name) {
		name = "hu"
	}
	os.Exit(cli.Run(name, os.Args[1:], cli.DefaultStreams(), version))
}
