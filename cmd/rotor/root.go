package main

import (
	"embed"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wzhd/rotor/internal/version"
	"github.com/wzhd/rotor/pkg/cobrax/topics"
	"github.com/wzhd/rotor/pkg/config"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/host"
	"github.com/wzhd/rotor/pkg/logging"
	"github.com/wzhd/rotor/pkg/ui"
)

//go:embed topics
var helpTopics embed.FS

// app holds the global flags shared by all commands
type app struct {
	verbosity  int
	configPath string
	format     string
	logFile    string

	// builder overrides the filesystem and command runner of properties
	builder *config.Builder
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rotor",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity, a.logFile)
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

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.configPath, "config", "", MsgFlagConfig)
	pf.StringVar(&a.format, "format", "", MsgFlagFormat)
	pf.StringVar(&a.logFile, "log-file", "", MsgFlagLogFile)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "Misc:"})

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newPushCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	sub, err := fs.Sub(helpTopics, "topics")
	if err == nil {
		_, err = topics.Initialize(rootCmd, sub, topics.Options{Renderer: topics.NewGlamourRenderer()})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.FindConfigFile(a.configPath))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("source", cfg.Source).Int("hosts", len(cfg.Hosts)).Msg("Configuration loaded")
	return cfg, nil
}

func (a *app) registry(cfg *config.Config) (*host.Registry, error) {
	if a.builder != nil {
		return a.builder.Build(cfg)
	}
	return config.Build(cfg)
}

// loadRegistry loads the configuration and builds the registry it declares
func (a *app) loadRegistry() (*config.Config, *host.Registry, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	reg, err := a.registry(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}

// renderer picks the --format flag, falling back to output.format
func (a *app) renderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	name := cfg.Output.Format
	if a.format != "" {
		name = a.format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}
