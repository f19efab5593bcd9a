package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/pkg/ui"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := sessionStore.Current()
		if !sess.Authenticated() {
			fmt.Println(ui.FormatInfo("Not logged in"))
			return nil
		}
		fmt.Println(ui.RenderKeyValue("Username", sess.User.Username))
		fmt.Println(ui.RenderKeyValue("Role", string(sess.User.Role)))
		fmt.Println(ui.RenderKeyValue("User ID", strconv.Itoa(sess.User.ID)))
		return nil
	},
}
