package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Declarative configuration of users at hosts"
	MsgListShort       = "List configured users at hosts"
	MsgApplyShort      = "Apply the properties of user@host locally"
	MsgCheckShort      = "Show what apply would change for user@host"
	MsgPushShort       = "Apply properties to remote users or hosts"
	MsgConfigShort     = "Print the effective configuration as TOML"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	MsgApplyExample = "  rotor apply alice@wks"
	MsgCheckExample = "  rotor check alice@wks --format json"
	MsgPushExample  = "  rotor push wks deploy@192.168.1.10"

	// Status messages
	MsgPushNotImplemented = "push is not implemented yet; %d users at hosts would be targeted"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Configuration file (default: $ROTOR_CONFIG or $XDG_CONFIG_HOME/rotor/rotor.toml)"
	MsgFlagFormat  = "Output format: auto, term, text, json or yaml (default: output.format)"
	MsgFlagLogFile = "Log file (default: $XDG_STATE_HOME/rotor/rotor.log)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
