package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/pkg/ui"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted session",
	Long:  `Remove the locally stored session token. The server holds no session state, so no request is issued.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sessionStore.Current().Authenticated() {
			fmt.Println(ui.FormatInfo("Not logged in"))
			return nil
		}
		username := sessionStore.Current().User.Username
		if err := sessionStore.Clear(); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Logged out " + username))
		return nil
	},
}
