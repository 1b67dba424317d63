package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mailsleuth.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mailsleuth",
		Short: "Email address reconnaissance tool",
		Long: `mailsleuth builds a profile of a single email address.

It derives likely names and usernames from the address, probes social,
developer and creative platforms for matching profiles, checks the
domain's registration date and SPF/DMARC records, and scores the
address for quality, professionalism, security risk and visibility.

Discovered profiles are guesses. Verify them before relying on them.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewInvestigateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
