package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	var dev bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			email, password, err := resolveCredentials(email, password)
			if err != nil {
				return err
			}

			login := app.Auth.Login
			if dev {
				login = app.Auth.DevLogin
			}
			user, err := login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			name := user.DisplayName
			if name == "" {
				name = user.Email
			}
			fmt.Printf("Signed in as %s\n", accentStyle.Render(name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&dev, "dev", false, "use the auth service's dev login endpoint")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var email, password, displayName string
	var dev bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			email, password, err := resolveCredentials(email, password)
			if err != nil {
				return err
			}

			register := app.Auth.Register
			if dev {
				register = app.Auth.DevRegister
			}
			user, err := register(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if displayName != "" && !dev {
				if user, err = app.Auth.SetDisplayName(cmd.Context(), displayName); err != nil {
					return fmt.Errorf("account created but display name not set: %w", err)
				}
			}

			fmt.Printf("Account created for %s\n", accentStyle.Render(user.Email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	cmd.Flags().BoolVar(&dev, "dev", false, "use the auth service's dev register endpoint")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Auth.CurrentUser()
			if remote {
				var err error
				if user, err = app.Auth.Me(cmd.Context()); err != nil {
					return err
				}
			}
			if user == nil {
				fmt.Println(dimStyle.Render("not signed in"))
				return nil
			}

			fmt.Printf("%s %s\n", titleStyle.Render("uid:"), user.UID)
			if user.Email != "" {
				fmt.Printf("%s %s\n", titleStyle.Render("email:"), user.Email)
			}
			if user.DisplayName != "" {
				fmt.Printf("%s %s\n", titleStyle.Render("name:"), user.DisplayName)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "verify the session against the auth backend")
	return cmd
}

func newProfileCmd(app *App) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if displayName == "" {
				return fmt.Errorf("nothing to update: pass --name")
			}
			user, err := app.Auth.SetDisplayName(cmd.Context(), displayName)
			if err != nil {
				return err
			}
			fmt.Printf("Display name set to %s\n", accentStyle.Render(user.DisplayName))
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "new display name")
	return cmd
}
