package main

import (
	"os"

	"github.com/agbru/apint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
