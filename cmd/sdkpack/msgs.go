package sdkpack

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Package an SDK source tree into a tarball"
	MsgBuildShort      = "Build the SDK archive"
	MsgVerifyShort     = "Check an SDK archive against the exclusion rules"
	MsgRulesShort      = "Show the exclusion rules"
	MsgGenConfigShort  = "Print or write a configuration template"
	MsgVersionShort    = "Print the sdkpack version"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "sdkpack %s (commit %s, built %s)\n"

	// Error messages
	MsgErrVerifyFailed  = "archive %s contains %d excluded entries"
	MsgErrCreateDisplay = "failed to create renderer"

	MsgGenConfigSkipped = "%s already exists, not overwritten"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Resolve the version and list what would be stripped without building"
	MsgFlagConfig  = "Configuration file layered over the defaults"
	MsgFlagChdir   = "Run as if sdkpack was started in this directory"
	MsgFlagFormat  = "Output format (auto, term, text, json)"
	MsgFlagWrite   = "Write the template to ./.sdkpack.toml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/verify-long.txt
	msgVerifyLongRaw string
	MsgVerifyLong    = strings.TrimSpace(msgVerifyLongRaw)

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
