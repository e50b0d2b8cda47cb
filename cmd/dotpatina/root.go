package dotpatina

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotpatina/internal/version"
	"github.com/arthur-debert/dotpatina/pkg/config"
	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/logging"
	"github.com/arthur-debert/dotpatina/pkg/style"
	"github.com/arthur-debert/dotpatina/pkg/ui"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity  int
		configFile string
		noColor    bool
	)

	rootCmd := &cobra.Command{
		Use:     "dotpatina",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the command line and returns the process exit code. Errors
// are printed to stderr in the error style.
func Execute(args []string, stdout, stderr io.Writer, stdin io.Reader) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(stdin)

	if err := rootCmd.Execute(); err != nil {
		styles := style.New(stderr, !ui.ColorEnabled(stderr))
		fmt.Fprintln(stderr, styles.Error(fmt.Sprintf(MsgErrorFormat, err)))
		log.Debug().
			Str("code", string(errors.GetErrorCode(err))).
			Interface("details", errors.Details(err)).
			Msg("Command failed")
		return 1
	}
	return 0
}

// loadConfig resolves the application configuration. Flags given on the
// command line override every other layer.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")

	overrides := map[string]interface{}{}
	for flag, key := range map[string]string{
		"no-color": "output.no_color",
		"no-input": "apply.no_input",
		"no-trash": "apply.no_trash",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		value, err := cmd.Flags().GetBool(flag)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid value for --%s", flag)
		}
		overrides[key] = value
	}

	return config.Load(config.Options{File: configFile, Overrides: overrides})
}

// newConsole builds the console for cmd. Color is used only when the
// configuration allows it and stdout supports it.
func newConsole(cmd *cobra.Command, cfg *config.Config) *ui.Console {
	out := cmd.OutOrStdout()
	noColor := cfg.Output.NoColor || !ui.ColorEnabled(out)
	return ui.NewConsole(out, cmd.InOrStdin(), noColor)
}
