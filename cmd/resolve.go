package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/foldernote/pkg/models"
	"github.com/grovetools/foldernote/pkg/resolver"
	"github.com/grovetools/foldernote/pkg/service"
)

func NewResolveCmd(svc **service.Service) *cobra.Command {
	var (
		strategyFlag      string
		emptyStrategyFlag string
		strictFlag        bool
		keywordFlag       string
		jsonOutput        bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [folder]",
		Short: "Resolve the representative note for a folder",
		Long: `Resolve the single note that represents a vault folder.

The stored settings decide how: an explicit folder-index marker always wins,
then the keyword naming convention, then the configured fallback strategy.
Flags override the stored settings for this invocation only.

Examples:
  foldernote resolve projects          # Resolve the 'projects' folder
  foldernote resolve .                 # Resolve the vault root
  foldernote resolve projects --strategy most-recent`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			folderPath := ""
			if len(args) > 0 {
				folderPath = args[0]
			}

			cfg := overrideResolution(s.Config.Resolution, cmd, strategyFlag, emptyStrategyFlag, strictFlag, keywordFlag)

			v, err := s.Vault()
			if err != nil {
				return err
			}
			folder, ok := v.Folder(folderPath)
			if !ok {
				return fmt.Errorf("folder not found in vault: %s", folderPath)
			}

			note := resolver.Resolve(folder, cfg)

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if note == nil {
					return enc.Encode(nil)
				}
				return enc.Encode(note)
			}

			if note == nil {
				fmt.Println("no representative note")
				return nil
			}
			fmt.Println(note.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyFlag, "strategy", "", "Override fallback strategy (most-recent, alphabetical, none)")
	cmd.Flags().StringVar(&emptyStrategyFlag, "empty-strategy", "", "Override empty folder strategy (recent-index-in-subfolders, recent-note-recursive, none)")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Require the exact keyword filename")
	cmd.Flags().StringVar(&keywordFlag, "keyword", "", "Override the index keyword")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the resolved note as JSON")

	return cmd
}

// overrideResolution layers per-invocation flags over the stored settings
// without mutating them.
func overrideResolution(base *models.Config, cmd *cobra.Command, strategy, emptyStrategy string, strict bool, keyword string) *models.Config {
	cfg := *base
	if strategy != "" {
		cfg.FallbackStrategy = models.FallbackStrategy(strategy)
	}
	if emptyStrategy != "" {
		cfg.EmptyFolderStrategy = models.EmptyFolderStrategy(emptyStrategy)
	}
	if cmd.Flags().Changed("strict") {
		cfg.StrictMatching = strict
	}
	if keyword != "" {
		cfg.Keyword = keyword
	}
	cfg.Normalize()
	return &cfg
}
