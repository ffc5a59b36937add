package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robalobadob/vocab-bingo/internal/words"
)

var listsDir string

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Validate and print the word-list catalog",
	Long: `Loads the embedded lists overlaid by --dir (default WORD_LISTS_DIR) and
prints id, display name and word count. Exits non-zero if any list is invalid.`,
	Args: cobra.NoArgs,
	RunE: runLists,
}

func init() {
	listsCmd.Flags().StringVar(&listsDir, "dir", "", "word list directory (overrides WORD_LISTS_DIR)")
}

func runLists(cmd *cobra.Command, args []string) error {
	dir := listsDir
	if dir == "" {
		dir = os.Getenv("WORD_LISTS_DIR")
	}
	lists, loadErr := words.Load(dir)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWORDS")
	for _, l := range words.NewCatalog(lists).All() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", l.ID, l.Name, l.Count())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if loadErr != nil {
		return fmt.Errorf("invalid word lists: %w", loadErr)
	}
	return nil
}
