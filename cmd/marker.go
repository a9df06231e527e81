package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/foldernote/pkg/service"
)

func NewMarkerCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marker",
		Short: "Manage the explicit folder-index marker on notes",
		Long: `Manage the folder-index frontmatter marker.

A marked note is always its folder's representative note, overriding the
keyword convention and every fallback strategy.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [note]",
		Short: "Mark a note as its folder's index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).SetMarker(args[0]); err != nil {
				return fmt.Errorf("set marker: %w", err)
			}
			fmt.Printf("Marked %s as folder index\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset [note]",
		Short: "Remove the folder-index marker from a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).UnsetMarker(args[0]); err != nil {
				return fmt.Errorf("unset marker: %w", err)
			}
			fmt.Printf("Removed folder index marker from %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [note]",
		Short: "Show whether a note carries the folder-index marker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			has, err := (*svc).HasMarker(args[0])
			if err != nil {
				return err
			}
			if has {
				fmt.Printf("%s is a folder index\n", args[0])
			} else {
				fmt.Printf("%s is not a folder index\n", args[0])
			}
			return nil
		},
	})

	return cmd
}
