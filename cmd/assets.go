package cmd

import (
	"fmt"
	"strconv"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

var (
	assetSearch     string
	assetLocationID int
	assetCondition  string
	assetPJ         string
	assetStartDate  string
	assetEndDate    string
	assetPage       int
	assetLimit      int

	assetInName      string
	assetInCode      string
	assetInCondition string
	assetInLocation  int
	assetInPJ        string
	assetInEntryDate string
	assetInUpdated   string
	assetInImage     string

	assetDeleteYes bool
)

// assetsCmd groups the asset collection operations
var assetsCmd = &cobra.Command{
	Use:     "assets",
	Aliases: []string{"barang"},
	Short:   "Manage assets (alias: barang)",
	Long: `List, inspect and mutate assets.

Examples:
  bmd assets list
  bmd assets list --search monitor --condition baik
  bmd assets get 42
  bmd assets create --name "Monitor LG 24" --code BRG-0042 --condition Baik --location 3 --pj "Pak Budi" --entry-date 2026-01-15
  bmd assets update 42 --condition rusak-ringan
  bmd assets delete 42 --yes`,
}

var assetsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List assets",
	RunE:    runAssetsList,
}

var assetsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one asset in detail",
	Long:  `Show one asset. With no id argument, pick interactively from the first page of matches.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAssetsGet,
}

var assetsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an asset",
	RunE:  runAssetsCreate,
}

var assetsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an asset",
	Long:  `Update an asset. Flags left unset keep their current value; the full record is resubmitted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetsUpdate,
}

var assetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetsDelete,
}

func init() {
	assetsListCmd.Flags().StringVar(&assetSearch, "search", "", "Search by name or code")
	assetsListCmd.Flags().IntVar(&assetLocationID, "location", 0, "Filter by location id")
	assetsListCmd.Flags().StringVar(&assetCondition, "condition", "", "Filter by condition (baik, rusak-ringan, rusak-berat)")
	assetsListCmd.Flags().StringVar(&assetPJ, "pj", "", "Filter by responsible party")
	assetsListCmd.Flags().StringVar(&assetStartDate, "start-date", "", "Filter by entry date from (YYYY-MM-DD)")
	assetsListCmd.Flags().StringVar(&assetEndDate, "end-date", "", "Filter by entry date to (YYYY-MM-DD)")
	assetsListCmd.Flags().IntVar(&assetPage, "page", 1, "Page number")
	assetsListCmd.Flags().IntVar(&assetLimit, "limit", 0, "Items per page (default from config)")

	for _, c := range []*cobra.Command{assetsCreateCmd, assetsUpdateCmd} {
		c.Flags().StringVar(&assetInName, "name", "", "Asset name")
		c.Flags().StringVar(&assetInCode, "code", "", "Asset code")
		c.Flags().StringVar(&assetInCondition, "condition", "", "Condition (baik, rusak-ringan, rusak-berat)")
		c.Flags().IntVar(&assetInLocation, "location", 0, "Location id")
		c.Flags().StringVar(&assetInPJ, "pj", "", "Responsible party")
		c.Flags().StringVar(&assetInEntryDate, "entry-date", "", "Entry date (YYYY-MM-DD)")
		c.Flags().StringVar(&assetInUpdated, "updated-date", "", "Updated date (YYYY-MM-DD)")
		c.Flags().StringVar(&assetInImage, "image", "", "Image reference")
	}

	assetsDeleteCmd.Flags().BoolVarP(&assetDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	assetsCmd.AddCommand(assetsListCmd)
	assetsCmd.AddCommand(assetsGetCmd)
	assetsCmd.AddCommand(assetsCreateCmd)
	assetsCmd.AddCommand(assetsUpdateCmd)
	assetsCmd.AddCommand(assetsDeleteCmd)
}

func buildAssetFilter() (domain.AssetFilter, error) {
	filter := domain.AssetFilter{
		Search:           assetSearch,
		LocationID:       assetLocationID,
		ResponsibleParty: assetPJ,
		StartDate:        assetStartDate,
		EndDate:          assetEndDate,
	}
	if assetCondition != "" {
		cond, err := domain.ParseCondition(assetCondition)
		if err != nil {
			return domain.AssetFilter{}, err
		}
		filter.Condition = cond
	}
	return filter, nil
}

func runAssetsList(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	filter, err := buildAssetFilter()
	if err != nil {
		return err
	}

	limit := assetLimit
	if limit <= 0 {
		limit = appConfig.PageSize
	}

	items, pg, err := apiClient.Assets().List(getContext(), filter, assetPage, limit)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list assets"))
		return err
	}

	if len(items) == 0 {
		fmt.Println(ui.FormatWarning("No assets found"))
		return nil
	}

	fmt.Println(ui.FormatTitle("Assets"))
	fmt.Println()
	fmt.Print(renderAssetTable(items, pg))
	return nil
}

func renderAssetTable(items []domain.Asset, pg domain.Pagination) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: 5, Align: "right"},
		{Header: "Name", Width: 30, Align: "left"},
		{Header: "Code", Width: 14, Align: "left"},
		{Header: "Condition", Width: 13, Align: "left"},
		{Header: "Location", Width: 20, Align: "left"},
		{Header: "PJ", Width: 16, Align: "left"},
		{Header: "Entry", Width: 12, Align: "left"},
	})
	for _, a := range items {
		table.AddRow([]string{
			strconv.Itoa(a.ID),
			truncate(a.Name, 30),
			a.Code,
			string(a.Condition),
			truncate(a.LocationName(), 20),
			truncate(a.ResponsibleParty, 16),
			a.DisplayEntryDate(),
		})
	}
	first, last := pg.Showing()
	table.Footer = fmt.Sprintf("Showing %d-%d of %d (page %d/%d)",
		first, last, pg.TotalItems, pg.CurrentPage, pg.TotalPages)
	return table.Render()
}

// pickAsset runs the fuzzy finder over the first page of matching
// assets when no id was given on the command line.
func pickAsset() (*domain.Asset, error) {
	items, _, err := apiClient.Assets().List(getContext(), domain.AssetFilter{}, 1, 100)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no assets to choose from")
	}

	idx, err := fuzzyfinder.Find(
		items,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", items[i].Name, items[i].Code)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			a := items[i]
			return fmt.Sprintf("Name: %s\nCode: %s\nCondition: %s\nLocation: %s\nPJ: %s\nEntry: %s",
				a.Name, a.Code, a.Condition, a.LocationName(), a.ResponsibleParty, a.DisplayEntryDate())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("selection cancelled")
	}
	return &items[idx], nil
}

func runAssetsGet(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	var id int
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid asset id %q", args[0])
		}
		id = parsed
	} else {
		picked, err := pickAsset()
		if err != nil {
			return err
		}
		id = picked.ID
	}

	a, err := apiClient.Assets().Get(getContext(), id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load asset"))
		return err
	}

	fmt.Println(ui.FormatTitle(a.Name))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", strconv.Itoa(a.ID)))
	fmt.Println(ui.RenderKeyValue("Code", a.Code))
	fmt.Println(ui.RenderKeyValue("Condition", string(a.Condition)))
	fmt.Println(ui.RenderKeyValue("Location", a.LocationName()))
	fmt.Println(ui.RenderKeyValue("Responsible", a.ResponsibleParty))
	fmt.Println(ui.RenderKeyValue("Entry Date", a.DisplayEntryDate()))
	if a.Image != "" {
		fmt.Println(ui.RenderKeyValue("Image", a.Image))
	}
	return nil
}

func requireMutationRole() error {
	if err := requireLogin(); err != nil {
		return err
	}
	role := sessionStore.Current().User.Role
	if !role.CanMutateAssets() {
		fmt.Println(ui.FormatError("Viewers cannot modify data"))
		return fmt.Errorf("role %q cannot modify data", role)
	}
	return nil
}

func runAssetsCreate(cmd *cobra.Command, args []string) error {
	if err := requireMutationRole(); err != nil {
		return err
	}

	in := domain.AssetInput{
		Name:             assetInName,
		Code:             assetInCode,
		LocationID:       assetInLocation,
		ResponsibleParty: assetInPJ,
		EntryDate:        assetInEntryDate,
		UpdatedDate:      assetInUpdated,
		Image:            assetInImage,
	}
	if assetInCondition != "" {
		cond, err := domain.ParseCondition(assetInCondition)
		if err != nil {
			return err
		}
		in.Condition = cond
	}
	if err := in.Validate(); err != nil {
		return err
	}

	a, err := apiClient.Assets().Create(getContext(), in)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create asset"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Created asset %d: %s", a.ID, a.Name)))
	return nil
}

func runAssetsUpdate(cmd *cobra.Command, args []string) error {
	if err := requireMutationRole(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid asset id %q", args[0])
	}

	current, err := apiClient.Assets().Get(getContext(), id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load asset"))
		return err
	}

	// Start from the stored record, overlay changed flags.
	in := domain.AssetInput{
		Name:             current.Name,
		Code:             current.Code,
		Condition:        current.Condition,
		LocationID:       current.LocationID,
		ResponsibleParty: current.ResponsibleParty,
		EntryDate:        normalizeWireDate(current.EntryDate),
		UpdatedDate:      normalizeWireDate(current.UpdatedDate),
		Image:            current.Image,
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = assetInName
	}
	if flags.Changed("code") {
		in.Code = assetInCode
	}
	if flags.Changed("condition") {
		cond, err := domain.ParseCondition(assetInCondition)
		if err != nil {
			return err
		}
		in.Condition = cond
	}
	if flags.Changed("location") {
		in.LocationID = assetInLocation
	}
	if flags.Changed("pj") {
		in.ResponsibleParty = assetInPJ
	}
	if flags.Changed("entry-date") {
		in.EntryDate = assetInEntryDate
	}
	if flags.Changed("updated-date") {
		in.UpdatedDate = assetInUpdated
	}
	if flags.Changed("image") {
		in.Image = assetInImage
	}
	if err := in.Validate(); err != nil {
		return err
	}

	updated, err := apiClient.Assets().Update(getContext(), id, in)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to update asset"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Updated asset %d: %s", updated.ID, updated.Name)))
	return nil
}

// normalizeWireDate reduces a backend date (which may carry a time
// component) to the YYYY-MM-DD form the write schema expects.
func normalizeWireDate(s string) string {
	if len(s) >= len(domain.DateLayout) {
		return s[:len(domain.DateLayout)]
	}
	return s
}

func runAssetsDelete(cmd *cobra.Command, args []string) error {
	if err := requireMutationRole(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid asset id %q", args[0])
	}

	if !assetDeleteYes {
		a, err := apiClient.Assets().Get(getContext(), id)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to load asset"))
			return err
		}
		if !confirm(fmt.Sprintf("Delete asset %q (%s)?", a.Name, a.Code)) {
			fmt.Println(ui.FormatInfo("Cancelled"))
			return nil
		}
	}

	if err := apiClient.Assets().Delete(getContext(), id); err != nil {
		fmt.Println(ui.FormatError("Failed to delete asset"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Deleted asset %d", id)))
	return nil
}

// confirm prompts for a y/N answer on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
