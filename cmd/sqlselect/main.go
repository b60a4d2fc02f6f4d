package main

import (
	"os"

	"github.com/biyonik/sqlselect/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand(nil)))
}
