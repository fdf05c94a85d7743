package main

import (
	"os"

	"falsec/cmd"
)

func main() {
	os.Exit(cmd.RunCompiler())
}
