// Package main provides urauth, offline tooling for uri ownership claims:
// parsing and resolving uris, deriving owner DIDs and signing the proofs and
// challenge envelopes the urauth module verifies.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sonr-io/urauth/x/urauth/client/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "urauth",
		Short:         "URI ownership tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cli.AddURAuthCmds(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
