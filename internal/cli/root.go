// Package cli implements the inku command tree. Commands only parse
// input and render output; all behavior lives in the application
// services injected through App.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Juliorubiodev/inku-go/internal/application"
	"github.com/Juliorubiodev/inku-go/internal/config"
)

// App bundles the wired services the commands depend on.
type App struct {
	Config  *config.Config
	Auth    *application.AuthFlow
	Library *application.Library
	Lists   *application.Lists
	Uploads *application.Uploads
}

// NewRootCommand builds the inku command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "inku",
		Short:         "Browse the Inku manga catalog and manage reading lists",
		Long:          "Browse the Inku manga catalog, read chapters, upload new ones, and manage reading lists from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Auth.Bootstrap(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Refreshes rotate the refresh token; keep the stored copy current.
			_ = app.Auth.Sync(cmd.Context())
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newCatalogCmd(app),
		newMangaCmd(app),
		newChaptersCmd(app),
		newReadCmd(app),
		newUploadCmd(app),
		newListsCmd(app),
	)
	return root
}

// requireConfigured fails early with the aggregated missing-variable
// message instead of letting individual requests error opaquely.
func requireConfigured(app *App) error {
	return app.Config.Configured()
}

// promptLine reads one line from stdin after printing the label, used
// when a flag was not provided.
func promptLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func resolveCredentials(email, password string) (string, string, error) {
	var err error
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = promptLine("Password"); err != nil {
			return "", "", err
		}
	}
	return email, password, nil
}
