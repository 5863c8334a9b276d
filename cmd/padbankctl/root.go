// ABOUTME: Root command wiring for padbankctl
// ABOUTME: Registers ingest, library, and remote machine subcommands
package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var serverFlag string

	rootCmd := &cobra.Command{
		Use:           "padbankctl",
		Short:         "Padbank machine CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "",
		"Machine address host:port (default: discover via mDNS)")

	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newTriggerCommand(&serverFlag))
	rootCmd.AddCommand(newLoadCommand(&serverFlag))
	rootCmd.AddCommand(newStatusCommand(&serverFlag))
	rootCmd.AddCommand(newListCommand(&serverFlag))
	rootCmd.AddCommand(newRescanCommand(&serverFlag))

	return rootCmd
}
