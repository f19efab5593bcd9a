package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

var (
	locationSearch string
	locationPage   int
	locationLimit  int

	locationInName    string
	locationInCode    string
	locationInAddress string

	locationDeleteYes bool
)

// locationsCmd groups the location collection operations
var locationsCmd = &cobra.Command{
	Use:     "locations",
	Aliases: []string{"lokasi"},
	Short:   "Manage locations (alias: lokasi)",
	Long: `List, inspect and mutate locations.

Deleting a location also deletes the assets assigned to it; the
backend cascades, so the confirmation prompt spells it out.

Examples:
  bmd locations list
  bmd locations list --search gudang
  bmd locations get 3
  bmd locations create --name "Gudang Utara" --code LOK-012 --address "Jl. Merdeka 5"
  bmd locations delete 3`,
}

var locationsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List locations",
	RunE:    runLocationsList,
}

var locationsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one location",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocationsGet,
}

var locationsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a location",
	RunE:  runLocationsCreate,
}

var locationsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a location",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocationsUpdate,
}

var locationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a location and its assets",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocationsDelete,
}

func init() {
	locationsListCmd.Flags().StringVar(&locationSearch, "search", "", "Search by name or code")
	locationsListCmd.Flags().IntVar(&locationPage, "page", 1, "Page number")
	locationsListCmd.Flags().IntVar(&locationLimit, "limit", 0, "Items per page (default from config)")

	for _, c := range []*cobra.Command{locationsCreateCmd, locationsUpdateCmd} {
		c.Flags().StringVar(&locationInName, "name", "", "Location name")
		c.Flags().StringVar(&locationInCode, "code", "", "Location code")
		c.Flags().StringVar(&locationInAddress, "address", "", "Location address")
	}

	locationsDeleteCmd.Flags().BoolVarP(&locationDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	locationsCmd.AddCommand(locationsListCmd)
	locationsCmd.AddCommand(locationsGetCmd)
	locationsCmd.AddCommand(locationsCreateCmd)
	locationsCmd.AddCommand(locationsUpdateCmd)
	locationsCmd.AddCommand(locationsDeleteCmd)
}

func runLocationsList(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	limit := locationLimit
	if limit <= 0 {
		limit = appConfig.PageSize
	}

	items, pg, err := apiClient.Locations().List(getContext(), domain.LocationFilter{Search: locationSearch}, locationPage, limit)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list locations"))
		return err
	}

	if len(items) == 0 {
		fmt.Println(ui.FormatWarning("No locations found"))
		return nil
	}

	fmt.Println(ui.FormatTitle("Locations"))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: 5, Align: "right"},
		{Header: "Name", Width: 28, Align: "left"},
		{Header: "Code", Width: 12, Align: "left"},
		{Header: "Address", Width: 40, Align: "left"},
	})
	for _, l := range items {
		table.AddRow([]string{
			strconv.Itoa(l.ID),
			truncate(l.Name, 28),
			l.Code,
			truncate(l.Address, 40),
		})
	}
	first, last := pg.Showing()
	table.Footer = fmt.Sprintf("Showing %d-%d of %d (page %d/%d)",
		first, last, pg.TotalItems, pg.CurrentPage, pg.TotalPages)
	fmt.Print(table.Render())
	return nil
}

func runLocationsGet(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid location id %q", args[0])
	}

	l, err := apiClient.Locations().Get(getContext(), id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load location"))
		return err
	}

	fmt.Println(ui.FormatTitle(l.Name))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", strconv.Itoa(l.ID)))
	fmt.Println(ui.RenderKeyValue("Code", l.Code))
	fmt.Println(ui.RenderKeyValue("Address", l.Address))
	return nil
}

func runLocationsCreate(cmd *cobra.Command, args []string) error {
	if err := requireMutationRole(); err != nil {
		return err
	}

	in := domain.LocationInput{Name: locationInName, Code: locationInCode, Address: locationInAddress}
	if err := in.Validate(); err != nil {
		return err
	}

	l, err := apiClient.Locations().Create(getContext(), in)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create location"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Created location %d: %s", l.ID, l.Name)))
	return nil
}

func runLocationsUpdate(cmd *cobra.Command, args []string) error {
	if err := requireMutationRole(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid location id %q", args[0])
	}

	current, err := apiClient.Locations().Get(getContext(), id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load location"))
		return err
	}

	in := domain.LocationInput{Name: current.Name, Code: current.Code, Address: current.Address}
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = locationInName
	}
	if flags.Changed("code") {
		in.Code = locationInCode
	}
	if flags.Changed("address") {
		in.Address = locationInAddress
	}
	if err := in.Validate(); err != nil {
		return err
	}

	updated, err := apiClient.Locations().Update(getContext(), id, in)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to update location"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Updated location %d: %s", updated.ID, updated.Name)))
	return nil
}

func runLocationsDelete(cmd *cobra.Command, args []string) error {
	if err := requireMutationRole(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid location id %q", args[0])
	}

	if !locationDeleteYes {
		l, err := apiClient.Locations().Get(getContext(), id)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to load location"))
			return err
		}
		if !confirm(fmt.Sprintf("Delete location %q and ALL assets assigned to it?", l.Name)) {
			fmt.Println(ui.FormatInfo("Cancelled"))
			return nil
		}
	}

	if err := apiClient.Locations().Delete(getContext(), id); err != nil {
		fmt.Println(ui.FormatError("Failed to delete location"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Deleted location %d", id)))
	return nil
}
