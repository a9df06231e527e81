package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/foldernote/pkg/models"
	"github.com/grovetools/foldernote/pkg/resolver"
	"github.com/grovetools/foldernote/pkg/service"
)

func NewListCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list [folder]",
		Short:   "List the vault tree with representative notes",
		Aliases: []string{"ls"},
		Long: `List a folder's subtree. Each folder line shows the note that would
open when the folder is selected, resolved with the stored settings.

Examples:
  foldernote list              # List the whole vault
  foldernote list projects     # List one subtree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			folderPath := ""
			if len(args) > 0 {
				folderPath = args[0]
			}

			v, err := s.Vault()
			if err != nil {
				return err
			}
			folder, ok := v.Folder(folderPath)
			if !ok {
				return fmt.Errorf("folder not found in vault: %s", folderPath)
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(folder)
			}

			printFolder(folder, s.Config.Resolution, 0)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the subtree as JSON")

	return cmd
}

func printFolder(folder *models.Folder, cfg *models.Config, depth int) {
	indent := strings.Repeat("  ", depth)

	name := folder.Name
	if folder.Path == "" {
		name = "."
	}
	if rep := resolver.Resolve(folder, cfg); rep != nil {
		fmt.Printf("%s%s/  ->  %s\n", indent, name, rep.Path)
	} else {
		fmt.Printf("%s%s/\n", indent, name)
	}

	for _, note := range folder.Notes {
		markerFlag := ""
		if note.Marker {
			markerFlag = " *"
		}
		fmt.Printf("%s  %s%s\n", indent, note.Name, markerFlag)
	}
	for _, sub := range folder.Subfolders {
		printFolder(sub, cfg, depth+1)
	}
}
