package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/config"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/library"
)

// now is replaced in tests.
var now = time.Now

// LibraryCmd returns the `launchgrid library` command group.
func LibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect and edit the game library",
	}
	cmd.AddCommand(libraryListCmd())
	cmd.AddCommand(libraryAddCmd())
	cmd.AddCommand(libraryFolderCmd())
	cmd.AddCommand(libraryMoveCmd())
	return cmd
}

func loadLibrary() (string, []library.Game, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", nil, fmt.Errorf("load config: %w", err)
	}
	path := cfg.LibraryPath()
	games, err := library.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, games, nil
}

func libraryListCmd() *cobra.Command {
	var sortName, query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := library.ParseSort(sortName)
			if err != nil {
				return err
			}
			_, games, err := loadLibrary()
			if err != nil {
				return err
			}

			shown := library.Sort(games, order)
			if query != "" {
				shown = library.Filter(games, query)
			}
			out := cmd.OutOrStdout()
			if len(shown) == 0 {
				fmt.Fprintln(out, "no games found")
				return nil
			}
			for _, g := range shown {
				printGame(out, g)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&sortName, "sort", "s", "title", "order: title, recent, played, added")
	cmd.Flags().StringVarP(&query, "filter", "f", "", "fuzzy filter on title and vendor")
	return cmd
}

func printGame(out io.Writer, g library.Game) {
	if g.IsFolder() {
		fmt.Fprintf(out, "  %s  ▸ %s  (%s)\n", g.ID, g.Title, plural(len(g.Members), "game"))
		return
	}
	played := "never played"
	if g.PlayCount > 0 {
		played = fmt.Sprintf("played %s×, %s", humanize.Comma(int64(g.PlayCount)), humanize.Time(g.LastPlayed))
	}
	vendor := ""
	if g.Vendor != "" {
		vendor = "  " + g.Vendor
	}
	fmt.Fprintf(out, "  %s  %s%s  %s\n", g.ID, g.Title, vendor, played)
}

func libraryAddCmd() *cobra.Command {
	var title, vendor string
	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Add a game file to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, games, err := loadLibrary()
			if err != nil {
				return err
			}
			file, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			}

			g := library.Game{
				ID:      uuid.NewString(),
				Title:   title,
				Vendor:  vendor,
				Path:    file,
				Kind:    library.KindGame,
				AddedAt: now().UTC(),
			}
			if err := library.Save(path, append(games, g)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", g.Title, g.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "display title (default: file name)")
	cmd.Flags().StringVar(&vendor, "vendor", "", "publisher shown under the title")
	return cmd
}

func libraryFolderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "folder <title>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, games, err := loadLibrary()
			if err != nil {
				return err
			}
			title := strings.TrimSpace(args[0])
			if title == "" {
				return fmt.Errorf("folder title is required")
			}

			f := library.Game{
				ID:      uuid.NewString(),
				Title:   title,
				Kind:    library.KindFolder,
				AddedAt: now().UTC(),
			}
			if err := library.Save(path, append(games, f)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created folder %s (%s)\n", f.Title, f.ID)
			return nil
		},
	}
}

func libraryMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <folder-id> <id>...",
		Short: "Move entries into a folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, games, err := loadLibrary()
			if err != nil {
				return err
			}
			next, moved, err := library.MoveInto(games, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("move: %w", err)
			}
			if moved == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to move")
				return nil
			}
			if err := library.Save(path, next); err != nil {
				return err
			}
			folder, _ := library.Find(next, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "moved %s into %s\n", plural(moved, "game"), folder.Title)
			return nil
		},
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
