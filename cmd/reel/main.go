package main

import (
	"os"
)

// Version is the version of the application, set at build time
var Version = "dev"

func main() {
	if err := NewRootCommand(Version).Execute(); err != nil {
		os.Exit(1)
	}
}
