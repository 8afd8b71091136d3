// Package commands implements the CLI commands for the recipe tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/adapters/logger"
	"go.trai.ch/recipe/internal/app"
	"go.trai.ch/recipe/internal/build"
	"go.trai.ch/recipe/internal/core/domain"
)

// CLI represents the command line interface for recipe.
type CLI struct {
	app     Application
	console Console
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Requirements(ctx context.Context) ([]domain.Requirement, error)
	Layout(ctx context.Context, opts app.LayoutOptions) (domain.Folders, error)
	Resolve(ctx context.Context, opts app.ResolveOptions) (*domain.Graph, error)
	Lock(ctx context.Context, opts app.ResolveOptions) (*domain.Lockfile, error)
	Install(ctx context.Context, opts app.InstallOptions) (*app.InstallResult, error)
	Watch(ctx context.Context, opts app.InstallOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// Console is the part of the logger the global flags reconfigure.
type Console interface {
	SetFormat(f logger.Format)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app. console may be nil.
func New(a Application, console Console) *CLI {
	rootCmd := &cobra.Command{
		Use:           "recipe",
		Short:         "Resolve pinned C++ dependencies and generate CMake integration files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log resolution phases and debug details")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: auto, pretty, text or json")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		console: console,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		c.configureConsole(cmd)
	}

	rootCmd.AddCommand(c.newRequirementsCmd())
	rootCmd.AddCommand(c.newLayoutCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configureConsole(cmd *cobra.Command) {
	if c.console == nil {
		return
	}
	if cmd.Flags().Changed("log-format") {
		format, _ := cmd.Flags().GetString("log-format")
		c.console.SetFormat(logger.ParseFormat(format))
	}
	if cmd.Flags().Changed("verbose") {
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.console.SetVerbose(verbose)
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addSettingsFlags registers the profile and setting overrides shared by resolving commands.
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("profile", "p", "", "Profile name or path")
	cmd.Flags().StringArrayP("setting", "s", nil, "Build setting override, e.g. -s build_type=Debug")
}

func settingsOptions(cmd *cobra.Command) app.SettingsOptions {
	profile, _ := cmd.Flags().GetString("profile")
	settings, _ := cmd.Flags().GetStringArray("setting")
	return app.SettingsOptions{Profile: profile, Settings: settings}
}
