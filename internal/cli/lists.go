package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage reading lists",
	}
	cmd.AddCommand(
		newListsPublicCmd(app),
		newListsMineCmd(app),
		newListsShowCmd(app),
		newListsCreateCmd(app),
		newListsRenameCmd(app),
		newListsDeleteCmd(app),
		newListsAddCmd(app),
		newListsRemoveCmd(app),
		newListsToggleCmd(app),
	)
	return cmd
}

func printListPage(header string, page *model.ListPage) {
	if len(page.Lists) == 0 {
		fmt.Println(dimStyle.Render("no lists"))
		return
	}

	columns := []table.Column{
		{Title: "ID", Width: 24},
		{Title: "Name", Width: 28},
		{Title: "Owner", Width: 18},
		{Title: "Items", Width: 6},
	}
	rows := make([]table.Row, 0, len(page.Lists))
	for _, l := range page.Lists {
		owner := l.OwnerName
		if owner == "" {
			owner = l.OwnerUID
		}
		rows = append(rows, table.Row{
			truncate(l.ID, 22),
			truncate(l.Name, 26),
			truncate(owner, 16),
			fmt.Sprintf("%d", l.ItemCount),
		})
	}

	fmt.Printf("\n%s\n\n", titleStyle.Render(fmt.Sprintf("%s (%d total)", header, page.Total)))
	fmt.Println(renderTable(columns, rows))
}

func printList(list *model.UserList) {
	fmt.Printf("%s %s\n", titleStyle.Render(list.Name), dimStyle.Render("("+list.ID+")"))
	if list.Len() == 0 {
		fmt.Println(dimStyle.Render("empty list"))
		return
	}
	for i, item := range list.Items {
		fmt.Printf("%2d. %s %s\n", i+1, item.MangaID, dimStyle.Render(item.AddedAt.Local().Format("2006-01-02")))
	}
}

func newListsPublicCmd(app *App) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "public",
		Short: "Browse public lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			result, err := app.Lists.Public(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			printListPage("Public lists", result)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")
	return cmd
}

func newListsMineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Show your lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			result, err := app.Lists.Mine(cmd.Context())
			if err != nil {
				return err
			}
			printListPage("My lists", result)
			return nil
		},
	}
}

func newListsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show a list's items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			list, err := app.Lists.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printList(list)
			return nil
		},
	}
}

func newListsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			list, err := app.Lists.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created %s %s\n", accentStyle.Render(list.Name), dimStyle.Render("("+list.ID+")"))
			return nil
		},
	}
}

func newListsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list-id> <name>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			list, err := app.Lists.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed to %s\n", accentStyle.Render(list.Name))
			return nil
		},
	}
}

func newListsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			if err := app.Lists.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("List deleted")
			return nil
		},
	}
}

func newListsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list-id> <manga-id>",
		Short: "Add a manga to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			list, err := app.Lists.Add(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Added %s to %s (%d items)\n", accentStyle.Render(args[1]), list.Name, list.Len())
			return nil
		},
	}
}

func newListsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list-id> <manga-id>",
		Short: "Remove a manga from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			list, err := app.Lists.Remove(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Removed %s from %s (%d items)\n", args[1], list.Name, list.Len())
			return nil
		},
	}
}

func newListsToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <list-id> <manga-id>",
		Short: "Add a manga to a list, or remove it if already present",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			list, added, err := app.Lists.Toggle(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if added {
				fmt.Printf("Added %s to %s (%d items)\n", accentStyle.Render(args[1]), list.Name, list.Len())
			} else {
				fmt.Printf("Removed %s from %s (%d items)\n", args[1], list.Name, list.Len())
			}
			return nil
		},
	}
}
