package main

import (
	"fmt"
	"os"

	"github.com/linskybing/formflow/cmd/formctl/cli"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewValidateCommand())
	root.AddCommand(cli.NewSeedCommand())
	root.AddCommand(cli.NewClearCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
