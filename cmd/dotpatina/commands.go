package dotpatina

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotpatina/internal/version"
	"github.com/arthur-debert/dotpatina/pkg/config"
	"github.com/arthur-debert/dotpatina/pkg/engine"
	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/filesystem"
	"github.com/arthur-debert/dotpatina/pkg/logging"
	"github.com/arthur-debert/dotpatina/pkg/paths"
	"github.com/arthur-debert/dotpatina/pkg/patina"
	"github.com/arthur-debert/dotpatina/pkg/trash"
	"github.com/arthur-debert/dotpatina/pkg/ui"
)

// patinaFlags are shared by the commands working on one patina.
type patinaFlags struct {
	tags []string
	vars []string
}

func (pf *patinaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&pf.tags, "tags", "t", nil, MsgFlagTags)
	cmd.Flags().StringSliceVarP(&pf.vars, "vars", "f", nil, MsgFlagVars)
}

// varsFiles lists the overlay files: configured ones first, then the ones
// given on the command line, made absolute against the working directory.
func (pf *patinaFlags) varsFiles(cfg *config.Config) ([]string, error) {
	files := append([]string(nil), cfg.Vars.Files...)
	for _, f := range pf.vars {
		abs, err := paths.Abs(f)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid variables file %s", f)
		}
		files = append(files, abs)
	}
	return files, nil
}

// newEngine wires an engine to the console and the real filesystem.
func (pf *patinaFlags) newEngine(cmd *cobra.Command, patinaPath string) (*engine.Engine, *ui.Console, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	files, err := pf.varsFiles(cfg)
	if err != nil {
		return nil, nil, err
	}

	fs := filesystem.NewOS()
	console := newConsole(cmd, cfg)
	e := engine.New(console, engine.Options{
		PatinaPath: patinaPath,
		Tags:       pf.tags,
		VarsFiles:  files,
		FS:         fs,
		Trash:      trash.New(fs, cfg.Trash.Dir),
		UseTrash:   !cfg.Apply.NoTrash,
		NoInput:    cfg.Apply.NoInput,
	})
	return e, console, nil
}

func newRenderCmd() *cobra.Command {
	var pf patinaFlags

	cmd := &cobra.Command{
		Use:     "render <patina>",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.render")
			logger.Info().
				Str("patina", args[0]).
				Strs("tags", pf.tags).
				Strs("vars", pf.vars).
				Msg("Rendering patina")

			e, _, err := pf.newEngine(cmd, args[0])
			if err != nil {
				return err
			}
			return e.Render()
		},
	}
	pf.register(cmd)
	return cmd
}

func newApplyCmd() *cobra.Command {
	var pf patinaFlags

	cmd := &cobra.Command{
		Use:     "apply <patina>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.apply")
			logger.Info().
				Str("patina", args[0]).
				Strs("tags", pf.tags).
				Strs("vars", pf.vars).
				Msg("Applying patina")

			e, _, err := pf.newEngine(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := e.Apply()
			if err != nil {
				return err
			}

			logger.Info().
				Str("state", res.State.String()).
				Int("written", res.Written).
				Int("trashed", res.Trashed).
				Msg("Apply finished")
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().Bool("no-input", false, MsgFlagNoInput)
	cmd.Flags().Bool("no-trash", false, MsgFlagNoTrash)
	return cmd
}

func newDescribeCmd() *cobra.Command {
	var pf patinaFlags

	cmd := &cobra.Command{
		Use:     "describe <patina>",
		Short:   MsgDescribeShort,
		Long:    MsgDescribeLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, console, err := pf.newEngine(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := e.Load()
			if err != nil {
				return err
			}
			describe(console, p, pf.tags)
			return nil
		},
	}
	pf.register(cmd)
	return cmd
}

// describe prints a summary of p, listing only the files selected by tags.
func describe(out ui.Interface, p *patina.Patina, tags []string) {
	s := out.Styles()

	out.FileHeader(p.Name)
	ui.Printf(out, MsgDescribeSource, s.Path(p.SourcePath))
	if p.Vars != nil && p.Vars.Len() > 0 {
		ui.Printf(out, MsgDescribeVars, strings.Join(p.Vars.Keys(), ", "))
	} else {
		out.Output(MsgDescribeNoVars)
	}

	if desc := strings.TrimSpace(p.Description); desc != "" {
		out.Output(renderMarkdown(desc, s.IsPlain()))
	}
	out.Output("\n")

	files := p.FilesForTags(tags)
	ui.Printf(out, MsgDescribeFiles, len(files))
	if len(files) == 0 {
		out.Output(MsgDescribeNoFile)
		return
	}

	width := 0
	for _, f := range files {
		width = max(width, len(f.Template))
	}
	for _, f := range files {
		ui.Printf(out, MsgDescribeFile, width, f.Template, s.Path(p.ResolvePath(f.Target)))
		if len(f.Tags) > 0 {
			out.Output(" " + s.Muted("["+strings.Join(f.Tags, ", ")+"]"))
		}
		out.Output("\n")
	}
}

// renderMarkdown renders a patina description. Rendering problems fall back
// to the raw text.
func renderMarkdown(content string, plain bool) string {
	options := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if plain {
		options = append(options, glamour.WithStandardStyle(styles.NoTTYStyle))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content + "\n"
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
