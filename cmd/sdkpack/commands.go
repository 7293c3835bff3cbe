package sdkpack

import (
	stderrors "errors"
	"fmt"

	"github.com/arthur-debert/sdkpack/internal/version"
	"github.com/arthur-debert/sdkpack/pkg/commands/build"
	"github.com/arthur-debert/sdkpack/pkg/commands/genconfig"
	"github.com/arthur-debert/sdkpack/pkg/commands/rules"
	"github.com/arthur-debert/sdkpack/pkg/commands/verify"
	"github.com/arthur-debert/sdkpack/pkg/config"
	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/arthur-debert/sdkpack/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags and the configuration loaded
// from them before any command runs
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	workDir    string
	format     string

	cfg *config.Config
}

func (g *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	r, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, MsgErrCreateDisplay)
	}
	return r, nil
}

// reportedError marks an error that was already shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already rendered by the command that
// returned it, so callers should not print it again.
func IsReported(err error) bool {
	var r *reportedError
	return stderrors.As(err, &r)
}

// report renders err in the selected format. JSON errors go to stdout next
// to the results; the other formats write to stderr. When the format itself
// is invalid err is returned untouched for the caller to print.
func (g *globalOptions) report(cmd *cobra.Command, err error) error {
	if err == nil || IsReported(err) {
		return err
	}

	format, ferr := ui.ParseFormat(g.format)
	if ferr != nil {
		return err
	}
	out := cmd.ErrOrStderr()
	if format == ui.FormatJSON {
		out = cmd.OutOrStdout()
	}

	r, rerr := ui.NewRenderer(format, out)
	if rerr != nil {
		return err
	}
	if rerr := r.RenderError(err); rerr != nil {
		log.Warn().Err(rerr).Msg("Failed to render error")
		return err
	}
	return &reportedError{err: err}
}

// reported wraps a cobra hook so its errors are rendered before cobra
// returns them.
func (g *globalOptions) reported(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return g.report(cmd, fn(cmd, args))
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "sdkpack",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: opts.reported(func(cmd *cobra.Command, args []string) error {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			cfg, err := config.Load(config.LoadOptions{
				WorkDir:    opts.workDir,
				ConfigFile: opts.configFile,
			})
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		}),
		RunE: opts.reported(func(cmd *cobra.Command, args []string) error {
			// Bare invocation builds
			return runBuild(cmd, opts)
		}),
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.workDir, "chdir", "C", "", MsgFlagChdir)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionFormat, version.Version, version.Commit, version.Date))

	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newVerifyCmd(opts))
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func runBuild(cmd *cobra.Command, opts *globalOptions) error {
	r, err := opts.renderer(cmd)
	if err != nil {
		return err
	}

	result, err := build.Build(cmd.Context(), build.BuildOptions{
		WorkDir: opts.workDir,
		Config:  opts.cfg,
		DryRun:  opts.dryRun,
	})
	if err != nil {
		return err
	}

	return r.RenderResult(result)
}

func newBuildCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: opts.reported(func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		}),
	}
}

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "verify [archive]",
		Short:   MsgVerifyShort,
		Long:    MsgVerifyLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"tgz", "tar.gz"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: opts.reported(func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			verifyOpts := verify.VerifyOptions{
				WorkDir: opts.workDir,
				Config:  opts.cfg,
			}
			if len(args) == 1 {
				verifyOpts.Archive = args[0]
			}

			result, err := verify.Verify(verifyOpts)
			if err != nil {
				return err
			}
			if err := r.RenderResult(result); err != nil {
				return err
			}

			if !result.OK() {
				return errors.Newf(errors.ErrVerifyFailed, MsgErrVerifyFailed, result.Archive, len(result.Violations)).
					WithDetail("archive", result.Archive)
			}
			return nil
		}),
	}
}

func newRulesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: opts.reported(func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := rules.Rules(rules.RulesOptions{Config: opts.cfg})
			if err != nil {
				return err
			}
			return r.RenderResult(result)
		}),
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: opts.reported(func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := genconfig.GenConfig(genconfig.GenConfigOptions{
				WorkDir: opts.workDir,
				Config:  opts.cfg,
				Write:   write,
			})
			if err != nil {
				return err
			}
			if err := r.RenderResult(result); err != nil {
				return err
			}
			for _, path := range result.FilesSkipped {
				if err := r.RenderMessage(fmt.Sprintf(MsgGenConfigSkipped, path)); err != nil {
					return err
				}
			}
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		// Version needs neither logging nor configuration
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		PersistentPreRun:      func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
