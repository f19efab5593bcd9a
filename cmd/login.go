package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/superbmd/bmd-cli/pkg/ui"
)

var loginUsername string

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the SUPER BMD backend",
	Long: `Authenticate with a username and password and persist the session.

The password is read from the terminal without echo. The resulting
bearer token is stored locally and attached to every later request
until it expires or 'bmd logout' is run.

Examples:
  bmd login
  bmd login --username admin`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username to log in as")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(loginUsername)
	if username == "" {
		fmt.Print("Username: ")
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &username); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(username)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password := string(raw)
	if password == "" {
		return fmt.Errorf("password is required")
	}

	sess, err := apiClient.Users().Login(getContext(), username, password)
	if err != nil {
		fmt.Println(ui.FormatError("Login failed"))
		return err
	}

	if err := sessionStore.Save(sess); err != nil {
		return fmt.Errorf("authenticated but failed to persist session: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Logged in as %s (%s)", sess.User.Username, sess.User.Role)))
	return nil
}
