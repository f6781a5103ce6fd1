// go-trollup is a sequencer for a transfer-only rollup.
package main

import (
	"fmt"
	"os"

	"github.com/trollup/go-trollup/cmd"
	"github.com/trollup/go-trollup/node"
)

var (
	version string
	commit  string
	branch  string
)

func main() { // run the app
	cmd.Version = version
	cmd.Commit = commit
	cmd.Branch = branch
	if err := node.GetCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
