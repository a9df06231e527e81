package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/foldernote/internal/tui/browser"
	"github.com/grovetools/foldernote/pkg/service"
)

func NewTuiCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the vault interactively",
		Long: `Browse the vault in a folder tree.

Clicking a folder title (or pressing enter on it) opens the folder's
representative note; whether the click also expands the folder depends on
the allow_folder_toggle setting. The fold arrow always toggles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := browser.New(*svc)
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}
