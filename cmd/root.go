package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/adapters/api"
	"github.com/superbmd/bmd-cli/internal/adapters/session"
	"github.com/superbmd/bmd-cli/internal/core/services"
	"github.com/superbmd/bmd-cli/pkg/appdir"
	"github.com/superbmd/bmd-cli/pkg/config"
	"github.com/superbmd/bmd-cli/pkg/notify"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

var (
	// Global app directories and configuration
	appDirs   *appdir.Dirs
	appConfig *config.Config

	// Session persistence and the API client built on it
	sessionStore *session.Store
	apiClient    *api.Client

	// Services
	exportService *services.ExportService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bmd",
	Short: "SUPER BMD - Regional asset management client",
	Long: ui.StyleTitle.Render("SUPER BMD") + " - Barang Milik Daerah\n\n" +
		"A terminal client for the SUPER BMD asset management backend.\n" +
		"Track assets, locations and accounts, pull dashboard aggregates,\n" +
		"export reports and print QR labels.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	flushNotifications()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(qrCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	dirs, err := appdir.New()
	if err != nil {
		return fmt.Errorf("failed to resolve app directories: %w", err)
	}
	appDirs = dirs

	if err := appDirs.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize app directories: %w", err)
	}

	cfg, err := config.Load(appDirs.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appConfig = cfg
	ui.SetTheme(appConfig.ColorTheme)

	sessionStore = session.NewStore(appDirs.SessionPath)

	client, err := api.New(appConfig.BaseURL, time.Duration(appConfig.TimeoutSeconds)*time.Second, sessionStore)
	if err != nil {
		return fmt.Errorf("failed to build API client: %w", err)
	}
	apiClient = client

	exportService = services.NewExportService()

	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}

// requireLogin stops a command early when no session is persisted,
// before any request is issued.
func requireLogin() error {
	if !sessionStore.Current().Authenticated() {
		fmt.Println(ui.FormatError("Not logged in"))
		fmt.Println(ui.FormatInfo("Run 'bmd login' first"))
		return fmt.Errorf("not logged in")
	}
	return nil
}

// flushNotifications prints any notifications queued during a one-shot
// command. Interactive views subscribe to the bus instead and render
// banners inline; anything left over still ends up here.
func flushNotifications() {
	for _, msg := range notify.Default.Drain() {
		fmt.Println(ui.FormatNotification(msg))
	}
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
