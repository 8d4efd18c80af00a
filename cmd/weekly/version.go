package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.buildDate=...".
var (
	version   = "0.1.0"
	commit    = "none"
	buildDate = "unknown"
)

var versionTemplate = `Version:	  %s
Go version:	  %s
Git commit:	  %s
Built:	          %s
OS/Arch:	  %s/%s
`

func newVersionCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if all {
				fmt.Fprintf(cmd.OutOrStdout(), versionTemplate,
					version,
					runtime.Version(),
					commit, buildDate,
					runtime.GOOS,
					runtime.GOARCH)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Print all version information")
	return cmd
}
