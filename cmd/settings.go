package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grovetools/foldernote/pkg/service"
	"github.com/grovetools/foldernote/pkg/settings"
)

func NewSettingsCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and edit resolution settings",
		Long: `Read and edit the stored resolution settings.

Fields:
  fallback_strategy      most-recent | alphabetical | none
  empty_folder_strategy  recent-index-in-subfolders | recent-note-recursive | none
  allow_folder_toggle    true | false
  strict_matching        true | false
  keyword                index-note naming convention (min 3 characters)`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, key := range settings.Keys() {
				fmt.Fprintf(w, "%s\t%v\n", key, viper.Get(key))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !viper.IsSet(args[0]) {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			fmt.Println(viper.Get(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.Set(viper.GetViper(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
