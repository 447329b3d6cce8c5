package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

// renderTable prints a static bubbles table with the shared styling.
func renderTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(subtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}

func newCatalogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the manga catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			mangas, fromCache, cachedAt, err := app.Library.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			if len(mangas) == 0 {
				fmt.Println(dimStyle.Render("catalog is empty"))
				return nil
			}

			columns := []table.Column{
				{Title: "ID", Width: 20},
				{Title: "Title", Width: 36},
				{Title: "Tags", Width: 24},
			}
			rows := make([]table.Row, 0, len(mangas))
			for _, m := range mangas {
				rows = append(rows, table.Row{
					truncate(m.ID, 18),
					truncate(m.Title, 34),
					truncate(strings.Join(m.Tags, ", "), 22),
				})
			}

			fmt.Printf("\n%s\n\n", titleStyle.Render(fmt.Sprintf("Catalog (%d mangas)", len(mangas))))
			fmt.Println(renderTable(columns, rows))
			if fromCache {
				fmt.Println(warnStyle.Render(fmt.Sprintf("backend unreachable, showing cached catalog from %s", cachedAt.Local().Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}
}

func newMangaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "manga <id>",
		Short: "Show one manga",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			manga, err := app.Library.Manga(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", titleStyle.Render(manga.Title))
			if manga.Description != "" {
				fmt.Printf("%s\n", manga.Description)
			}
			if len(manga.Tags) > 0 {
				fmt.Printf("%s %s\n", dimStyle.Render("tags:"), strings.Join(manga.Tags, ", "))
			}
			if manga.Recommended != "" {
				fmt.Printf("%s %s\n", dimStyle.Render("recommended:"), manga.Recommended)
			}
			if cover, ok := model.ResolveCoverURL(manga); ok {
				fmt.Printf("%s %s\n", dimStyle.Render("cover:"), accentStyle.Render(cover))
			} else {
				fmt.Println(dimStyle.Render("no cover available"))
			}
			return nil
		},
	}
}

func newChaptersCmd(app *App) *cobra.Command {
	var desc bool

	cmd := &cobra.Command{
		Use:   "chapters <manga-id>",
		Short: "List a manga's chapters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			order := model.SortAsc
			if desc {
				order = model.SortDesc
			}
			chapters, err := app.Library.Chapters(cmd.Context(), args[0], order)
			if err != nil {
				return err
			}
			if len(chapters) == 0 {
				fmt.Println(dimStyle.Render("no chapters yet"))
				return nil
			}

			columns := []table.Column{
				{Title: "#", Width: 6},
				{Title: "ID", Width: 20},
				{Title: "Title", Width: 40},
			}
			rows := make([]table.Row, 0, len(chapters))
			for _, ch := range chapters {
				rows = append(rows, table.Row{
					fmt.Sprintf("%d", ch.Number),
					truncate(ch.ID, 18),
					truncate(ch.Title, 38),
				})
			}

			fmt.Printf("\n%s\n\n", titleStyle.Render(fmt.Sprintf("%s (%d chapters)", args[0], len(chapters))))
			fmt.Println(renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&desc, "desc", false, "newest chapter first")
	return cmd
}

func newReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <manga-id> <chapter-id>",
		Short: "Print the time-limited PDF URL for a chapter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			readURL, err := app.Library.ReadURL(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			// The URL expires; print it and nothing else so it pipes cleanly.
			fmt.Println(readURL)
			return nil
		},
	}
}
