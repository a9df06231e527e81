package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/foldernote/pkg/search"
	"github.com/grovetools/foldernote/pkg/service"
)

func NewSearchCmd(svc **service.Service) *cobra.Command {
	var (
		folderFilter string
		markerOnly   bool
		limit        int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search indexed notes",
		Long: `Search the note index by name and title.

Run 'foldernote index' first to build or refresh the index.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			query := strings.Join(args, " ")

			results, err := s.Index.Search(query, &search.Options{
				Folder:     folderFilter,
				MarkerOnly: markerOnly,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("search index: %w", err)
			}

			if len(results) == 0 {
				fmt.Println("no matches")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tTITLE\tMODIFIED")
			for _, note := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\n", note.Path, note.Title, note.ModifiedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&folderFilter, "folder", "", "Restrict matches to one folder subtree")
	cmd.Flags().BoolVar(&markerOnly, "markers", false, "Only notes carrying the folder-index marker")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of results")

	return cmd
}

func NewIndexCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the search index from the vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := (*svc).Reindex()
			if err != nil {
				return fmt.Errorf("reindex: %w", err)
			}
			fmt.Printf("Indexed %d notes\n", count)
			return nil
		},
	}
}
