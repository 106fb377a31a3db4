// Package commands implements the CLI commands for mvninspect.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/mvninspect/internal/app"
	"go.trai.ch/mvninspect/internal/build"
	"go.trai.ch/mvninspect/internal/core/domain"
)

// EnvPrefix prefixes the environment variables that mirror command line flags.
const EnvPrefix = "MVNINSPECT"

// CLI represents the command line interface for mvninspect.
type CLI struct {
	app     Application
	config  *viper.Viper
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Inspect(ctx context.Context, opts app.InspectOptions) error
	Watch(ctx context.Context, opts app.InspectOptions) error
	Clean(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:   "mvninspect --maven-script <pom.xml>",
		Short: "Print the source paths, output paths and classpath of every Maven module",
		Long: "mvninspect reads a Maven project and its submodules, resolves the dependencies of\n" +
			"every module against the local repository and the configured mirror, and prints\n" +
			"what Maven would compile and with what classpath.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP(flagMavenScript, "s", "", "Project descriptor of the build (pom.xml), required")
	flags.StringP(flagMavenHome, "m", "", "Maven installation directory (default $"+domain.MavenHomeEnv+")")
	flags.StringP(flagSettings, "u", "", "User settings file (default <maven-home>/conf/settings.xml)")
	flags.StringP(flagLocalRepo, "l", "", "Local repository, overrides the one from the settings file")
	flags.StringP(flagFormat, "f", string(domain.FormatAuto), "Output format: auto, json, yaml or table")
	flags.Bool(flagOffline, false, "Never download artifacts")
	flags.Bool(flagNoCache, false, "Bypass the resolution cache")
	flags.Bool(flagTimings, false, "Log the slowest steps of the inspection")
	flags.Bool(flagLogJSON, false, "Write log lines as JSON")

	c := &CLI{
		app:     a,
		config:  newConfig(rootCmd),
		rootCmd: rootCmd,
	}

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		opts, err := c.inspectOptions(cmd)
		if err != nil {
			return err
		}
		return c.app.Inspect(cmd.Context(), opts)
	}

	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// newConfig binds the persistent flags of root into a viper instance that
// also reads MVNINSPECT_* environment variables.
func newConfig(root *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(root.PersistentFlags())
	_ = v.BindEnv(flagMavenHome, EnvPrefix+"_MAVEN_HOME", domain.MavenHomeEnv)
	return v
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
