package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/foldernote/cmd"
	"github.com/grovetools/foldernote/cmd/config"
	"github.com/grovetools/foldernote/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:           "foldernote",
		Short:         "Representative-note resolution for hierarchical note collections",
		Long:          "foldernote resolves the single note that represents a folder in a markdown vault\nand browses the vault with folder clicks opening that note.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()

		var err error
		svc, err = config.InitService()
		return err
	}
	rootCmd.PersistentPostRunE = func(c *cobra.Command, args []string) error {
		if svc != nil {
			return svc.Close()
		}
		return nil
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewResolveCmd(&svc))
	rootCmd.AddCommand(cmd.NewMarkerCmd(&svc))
	rootCmd.AddCommand(cmd.NewSettingsCmd(&svc))
	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewSearchCmd(&svc))
	rootCmd.AddCommand(cmd.NewIndexCmd(&svc))
	rootCmd.AddCommand(cmd.NewTuiCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
