package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/pkg/ui"
)

// configCmd groups the configuration operations
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the bmd configuration",
	Long: `Show, set or edit the YAML configuration.

Examples:
  bmd config show
  bmd config set base_url http://bmd.example.go.id/api
  bmd config set page_size 25
  bmd config edit`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.FormatTitle("Configuration"))
		fmt.Println(ui.FormatMuted(appDirs.ConfigPath))
		fmt.Println()
		fmt.Println(ui.RenderKeyValue("base_url", appConfig.BaseURL))
		fmt.Println(ui.RenderKeyValue("timeout_seconds", strconv.Itoa(appConfig.TimeoutSeconds)))
		fmt.Println(ui.RenderKeyValue("page_size", strconv.Itoa(appConfig.PageSize)))
		fmt.Println(ui.RenderKeyValue("search_debounce_ms", strconv.Itoa(appConfig.SearchDebounceMS)))
		fmt.Println(ui.RenderKeyValue("watch_refresh_seconds", strconv.Itoa(appConfig.WatchRefreshSeconds)))
		fmt.Println(ui.RenderKeyValue("import_settle_ms", strconv.Itoa(appConfig.ImportSettleMS)))
		fmt.Println(ui.RenderKeyValue("color_theme", appConfig.ColorTheme))
		fmt.Println(ui.RenderKeyValue("default_export_format", appConfig.DefaultExportFormat))
		fmt.Println(ui.RenderKeyValue("export_dir", appConfig.ExportDir))
		fmt.Println(ui.RenderKeyValue("qr_size", strconv.Itoa(appConfig.QRSize)))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value and save",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appDirs.ConfigPath

		// Write the defaults first so there is something to edit.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := appConfig.Save(path); err != nil {
				return err
			}
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	setInt := func(dst *int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s needs a number, got %q", key, value)
		}
		*dst = n
		return nil
	}

	switch key {
	case "base_url":
		appConfig.BaseURL = value
	case "timeout_seconds":
		if err := setInt(&appConfig.TimeoutSeconds); err != nil {
			return err
		}
	case "page_size":
		if err := setInt(&appConfig.PageSize); err != nil {
			return err
		}
	case "search_debounce_ms":
		if err := setInt(&appConfig.SearchDebounceMS); err != nil {
			return err
		}
	case "watch_refresh_seconds":
		if err := setInt(&appConfig.WatchRefreshSeconds); err != nil {
			return err
		}
	case "import_settle_ms":
		if err := setInt(&appConfig.ImportSettleMS); err != nil {
			return err
		}
	case "color_theme":
		appConfig.ColorTheme = value
	case "default_export_format":
		appConfig.DefaultExportFormat = value
	case "export_dir":
		appConfig.ExportDir = value
	case "qr_size":
		if err := setInt(&appConfig.QRSize); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown configuration key %q (see 'bmd config show')", key)
	}

	if err := appConfig.Save(appDirs.ConfigPath); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Set %s = %s", key, value)))
	return nil
}
