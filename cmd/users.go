package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

var (
	userSearch string
	userRole   string
	userPage   int
	userLimit  int

	userInUsername string
	userInPassword string
	userInRole     string

	userDeleteYes bool
)

// usersCmd groups the account management operations. Admin only; the
// gate is checked locally before any request is issued, matching the
// server-side policy.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin only)",
	Long: `List, inspect and mutate user accounts.

Only administrators may manage accounts. Other roles are refused
before any request leaves the machine.

Examples:
  bmd users list
  bmd users list --role viewer
  bmd users create --username budi --password rahasia1 --role penanggung_jawab
  bmd users update 4 --role admin
  bmd users delete 4`,
}

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List user accounts",
	RunE:    runUsersList,
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersGet,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE:  runUsersCreate,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Long:  `Update an account. Omitting --password keeps the current password.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	usersListCmd.Flags().StringVar(&userSearch, "search", "", "Search by username")
	usersListCmd.Flags().StringVar(&userRole, "role", "", "Filter by role (admin, penanggung_jawab, viewer)")
	usersListCmd.Flags().IntVar(&userPage, "page", 1, "Page number")
	usersListCmd.Flags().IntVar(&userLimit, "limit", 0, "Items per page (default from config)")

	for _, c := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userInUsername, "username", "", "Username")
		c.Flags().StringVar(&userInPassword, "password", "", "Password")
		c.Flags().StringVar(&userInRole, "role", "", "Role (admin, penanggung_jawab, viewer)")
	}

	usersDeleteCmd.Flags().BoolVarP(&userDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}

func requireAdmin() error {
	if err := requireLogin(); err != nil {
		return err
	}
	role := sessionStore.Current().User.Role
	if !role.CanManageUsers() {
		fmt.Println(ui.FormatError("Only administrators can manage accounts"))
		return fmt.Errorf("role %q cannot manage accounts", role)
	}
	return nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	filter := domain.UserFilter{Search: userSearch}
	if userRole != "" {
		role, err := domain.ParseRole(userRole)
		if err != nil {
			return err
		}
		filter.Role = role
	}

	limit := userLimit
	if limit <= 0 {
		limit = appConfig.PageSize
	}

	items, pg, err := apiClient.Users().List(getContext(), filter, userPage, limit)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list accounts"))
		return err
	}

	if len(items) == 0 {
		fmt.Println(ui.FormatWarning("No accounts found"))
		return nil
	}

	fmt.Println(ui.FormatTitle("Accounts"))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: 5, Align: "right"},
		{Header: "Username", Width: 24, Align: "left"},
		{Header: "Role", Width: 18, Align: "left"},
	})
	for _, u := range items {
		table.AddRow([]string{
			strconv.Itoa(u.ID),
			u.Username,
			string(u.Role),
		})
	}
	first, last := pg.Showing()
	table.Footer = fmt.Sprintf("Showing %d-%d of %d (page %d/%d)",
		first, last, pg.TotalItems, pg.CurrentPage, pg.TotalPages)
	fmt.Print(table.Render())
	return nil
}

func runUsersGet(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	u, err := apiClient.Users().Get(getContext(), id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load account"))
		return err
	}

	fmt.Println(ui.FormatTitle(u.Username))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", strconv.Itoa(u.ID)))
	fmt.Println(ui.RenderKeyValue("Role", string(u.Role)))
	return nil
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	in := domain.UserInput{
		Username: userInUsername,
		Password: userInPassword,
		Role:     domain.NormalizeRole(userInRole),
	}
	if err := in.Validate(true); err != nil {
		return err
	}

	u, err := apiClient.Users().Create(getContext(), in)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create account"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Created account %d: %s (%s)", u.ID, u.Username, u.Role)))
	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	current, err := apiClient.Users().Get(getContext(), id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load account"))
		return err
	}

	in := domain.UserInput{Username: current.Username, Role: current.Role}
	flags := cmd.Flags()
	if flags.Changed("username") {
		in.Username = userInUsername
	}
	if flags.Changed("password") {
		in.Password = userInPassword
	}
	if flags.Changed("role") {
		role, err := domain.ParseRole(userInRole)
		if err != nil {
			return err
		}
		in.Role = role
	}
	if err := in.Validate(false); err != nil {
		return err
	}

	u, err := apiClient.Users().Update(getContext(), id, in)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to update account"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Updated account %d: %s (%s)", u.ID, u.Username, u.Role)))
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	if id == sessionStore.Current().User.ID {
		return fmt.Errorf("refusing to delete the account you are logged in as")
	}

	if !userDeleteYes {
		u, err := apiClient.Users().Get(getContext(), id)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to load account"))
			return err
		}
		if !confirm(fmt.Sprintf("Delete account %q?", u.Username)) {
			fmt.Println(ui.FormatInfo("Cancelled"))
			return nil
		}
	}

	if err := apiClient.Users().Delete(getContext(), id); err != nil {
		fmt.Println(ui.FormatError("Failed to delete account"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Deleted account %d", id)))
	return nil
}
