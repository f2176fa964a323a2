package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Assemble and package Java web applications"
	MsgAssembleShort      = "Assemble the exploded web application directory"
	MsgPackageShort       = "Assemble, then package the web application as a .war"
	MsgConfigurationShort = "Package the configuration directory"
	MsgCopyJSShort        = "Copy JavaScript modules, tagging imports with a query"
	MsgCleanShort         = "Remove the assembled web application and the unpack cache"
	MsgConfigShort        = "Inspect the effective configuration"
	MsgConfigShowShort    = "Print the effective configuration"
	MsgVersionShort       = "Print version information"
	MsgManShort           = "Generate man pages"
	MsgCompletionShort    = "Generate shell completion script"

	// Status messages
	MsgCleaned     = "Removed %s"
	MsgNothingToDo = "Nothing to remove"
	MsgManWritten  = "Man pages written to %s"
	MsgVersionLine = "warforge version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrBadFormat    = "invalid output format"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig         = "Project config file (default warforge.toml or warforge.yaml in the base directory)"
	MsgFlagBaseDir        = "Project base directory"
	MsgFlagFormat         = "Output format: auto, term, text or json (overrides output.format)"
	MsgFlagArchiveClasses = "Pack compiled classes into WEB-INF/lib/<final name>.jar"
	MsgFlagWebappDir      = "Directory to assemble the web application into"
	MsgFlagClassifier     = "Classifier appended to the configuration bundle name"
	MsgFlagSource         = "Directory to copy JavaScript from"
	MsgFlagTarget         = "Directory to copy JavaScript to"
	MsgFlagQuery          = "Query appended to module import paths"
	MsgFlagOnError        = "What to do when a file cannot be copied: ignore, warn or fail"
	MsgFlagCleanWork      = "Remove the nested archive unpack cache"
	MsgFlagCleanWebapp    = "Remove the assembled web application directory"
	MsgFlagManDir         = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/assemble-long.txt
	msgAssembleLongRaw string
	MsgAssembleLong    = strings.TrimSpace(msgAssembleLongRaw)

	//go:embed msgs/assemble-example.txt
	msgAssembleExampleRaw string
	MsgAssembleExample    = strings.TrimRight(msgAssembleExampleRaw, "\n")

	//go:embed msgs/copyjs-long.txt
	msgCopyJSLongRaw string
	MsgCopyJSLong    = strings.TrimSpace(msgCopyJSLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
