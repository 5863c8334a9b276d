// ABOUTME: Remote machine subcommands for padbankctl
// ABOUTME: trigger, load, status, list, and rescan over the control surface
package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/padbank/padbank-go/internal/protocol"
	"github.com/spf13/cobra"
)

func newTriggerCommand(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger <voice>",
		Short: "Trigger a voice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			voice, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid voice %q", args[0])
			}

			if _, err := send(*server, protocol.Command{Type: protocol.CmdTrigger, Voice: voice}); err != nil {
				return err
			}
			fmt.Printf("Triggered voice %d\n", voice)
			return nil
		},
	}
}

func newLoadCommand(server *string) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "load <voice> [index]",
		Short: "Bind a sample to a voice by folder index or --ref",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			voice, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid voice %q", args[0])
			}

			load := protocol.Command{Type: protocol.CmdLoad, Voice: voice, Ref: ref}
			if len(args) == 2 {
				index, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid index %q", args[1])
				}
				load.Index = &index
			}
			if load.Ref == "" && load.Index == nil {
				return fmt.Errorf("give an index or --ref")
			}

			if _, err := send(*server, load); err != nil {
				return err
			}
			fmt.Printf("Loaded voice %d\n", voice)
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Asset reference, e.g. kick/808.wav")
	return cmd
}

func newStatusCommand(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show voice states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := send(*server, protocol.Command{Type: protocol.CmdStatus})
			if err != nil {
				return err
			}

			for _, v := range reply.Voices {
				asset := v.Asset
				if asset == "" {
					asset = "(empty)"
				}
				fmt.Printf("voice %d: %-8s %s", v.Voice, v.State, asset)
				if v.Total > 0 {
					fmt.Printf("  %d/%d samples, %d buffered", v.Cursor, v.Total, v.Buffered)
				}
				if v.Underruns > 0 {
					fmt.Printf("  (%d underruns)", v.Underruns)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newListCommand(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the machine's sample library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := send(*server, protocol.Command{Type: protocol.CmdList})
			if err != nil {
				return err
			}

			folders := make([]string, 0, len(reply.Samples))
			for folder := range reply.Samples {
				folders = append(folders, folder)
			}
			sort.Strings(folders)

			for _, folder := range folders {
				fmt.Printf("%s/\n", folder)
				for i, name := range reply.Samples[folder] {
					fmt.Printf("  [%d] %s\n", i, name)
				}
			}
			return nil
		},
	}
}

func newRescanCommand(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rescan",
		Short: "Re-read the machine's library folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := send(*server, protocol.Command{Type: protocol.CmdRescan}); err != nil {
				return err
			}
			fmt.Println("Rescanned")
			return nil
		},
	}
}
