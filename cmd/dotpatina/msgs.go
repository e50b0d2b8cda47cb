package dotpatina

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render templated dotfiles and apply them with a preview"
	MsgRenderShort     = "Render a patina to stdout"
	MsgApplyShort      = "Render and apply a patina"
	MsgDescribeShort   = "Describe the contents of a patina"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Configuration file (default $XDG_CONFIG_HOME/dotpatina/config.toml)"
	MsgFlagNoColor = "Disable colors"
	MsgFlagTags    = "Only use files carrying one of these tags (repeatable)"
	MsgFlagVars    = "Variables file overlaid on the patina variables (repeatable, applied in order)"
	MsgFlagNoInput = "Don't ask for confirmation before writing"
	MsgFlagNoTrash = "Don't keep a copy of overwritten files in the trash"

	// describe output
	MsgDescribeSource = "  source: %s\n"
	MsgDescribeVars   = "  vars:   %s\n"
	MsgDescribeNoVars = "  vars:   (none)\n"
	MsgDescribeFiles  = "Files (%d):\n"
	MsgDescribeFile   = "  %-*s -> %s"
	MsgDescribeNoFile = "  (no files selected)\n"

	// Version output
	MsgVersionFormat = "dotpatina version %s\n  commit: %s\n  built:  %s\n"

	// Errors
	MsgErrorFormat  = "Error: %v"
	MsgErrNoCommand = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/describe-long.txt
	msgDescribeLongRaw string
	MsgDescribeLong    = strings.TrimSpace(msgDescribeLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
