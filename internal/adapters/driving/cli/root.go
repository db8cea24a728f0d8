// Package cli provides the idealens command line, built with cobra.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/idealens/internal/core/ports/driving"
	"github.com/custodia-labs/idealens/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	ephemeral bool
)

// Options are the global flags that decide where settings live.
type Options struct {
	ConfigDir string
	Ephemeral bool
}

// Services are the driving ports commands run against.
// Search and Chat are factories so commands that never search do not need
// a working collaborator configuration.
type Services struct {
	Settings driving.SettingsService
	Search   func() (driving.SearchController, error)
	Chat     func() (driving.ChatController, error)
	Close    func() error
}

// Builder creates the services once global flags are parsed.
type Builder func(Options) (*Services, error)

var (
	builder     Builder
	appServices *Services
)

var rootCmd = &cobra.Command{
	Use:   "idealens",
	Short: "Discover open-source repositories for your project ideas",
	Long: `IdeaLens finds GitHub repositories related to a project idea, summarises
each one, and offers an assistant to talk the idea through.

Run without a subcommand to open the interactive terminal UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "settings directory (default ~/.idealens)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"keep settings in memory, seeded from IDEALENS_* environment variables")
}

// SetBuilder sets how services are created.
func SetBuilder(b Builder) {
	builder = b
}

// SetVersion sets the version reported by 'idealens version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if appServices != nil || builder == nil {
		return nil
	}
	s, err := builder(Options{ConfigDir: configDir, Ephemeral: ephemeral})
	if err != nil {
		return err
	}
	appServices = s
	return nil
}

func closeServices() {
	if appServices != nil && appServices.Close != nil {
		if err := appServices.Close(); err != nil {
			logger.Warn("close: %v", err)
		}
	}
}

func settingsService() (driving.SettingsService, error) {
	if appServices == nil || appServices.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return appServices.Settings, nil
}

func searchController() (driving.SearchController, error) {
	if appServices == nil || appServices.Search == nil {
		return nil, errors.New("search service not configured")
	}
	return appServices.Search()
}

func chatController() (driving.ChatController, error) {
	if appServices == nil || appServices.Chat == nil {
		return nil, errors.New("chat service not configured")
	}
	return appServices.Chat()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
