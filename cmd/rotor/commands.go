package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wzhd/rotor/internal/version"
	"github.com/wzhd/rotor/pkg/host"
	"github.com/wzhd/rotor/pkg/runner"
)

// targetCompletion completes user@host from the configuration
func (a *app) targetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	_, reg, err := a.loadRegistry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var targets []string
	for _, p := range reg.Pairs() {
		targets = append(targets, p.Target().String())
	}
	return targets, cobra.ShellCompDirectiveNoFileComp
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, cfg)
			if err != nil {
				return err
			}
			return r.RenderPairs(reg.Pairs())
		},
	}
}

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "apply <user>@<host>",
		Short:             MsgApplyShort,
		Long:              MsgApplyLong,
		Example:           MsgApplyExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], false)
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "check <user>@<host>",
		Short:             MsgCheckShort,
		Example:           MsgCheckExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], true)
		},
	}
}

// run reconciles the property list of target. The report is rendered
// even when properties failed.
func (a *app) run(cmd *cobra.Command, arg string, checkOnly bool) error {
	target, err := host.ParseUserAtHost(arg)
	if err != nil {
		return err
	}
	cfg, reg, err := a.loadRegistry()
	if err != nil {
		return err
	}
	list, err := reg.Lookup(target)
	if err != nil {
		return err
	}
	r, err := a.renderer(cmd, cfg)
	if err != nil {
		return err
	}

	log.Info().Str("target", target.String()).Bool("checkOnly", checkOnly).Msg("Running properties")
	rn := runner.New(r)
	var report *runner.Report
	var runErr error
	if checkOnly {
		report, runErr = rn.Check(target.String(), list)
	} else {
		report, runErr = rn.Apply(target.String(), list)
	}
	if err := r.RenderReport(report); err != nil {
		return err
	}
	return runErr
}

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "push <host|user@host>...",
		Short:   MsgPushShort,
		Example: MsgPushExample,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := make([]host.PushTarget, 0, len(args))
			for _, arg := range args {
				t, err := host.ParsePushTarget(arg)
				if err != nil {
					return err
				}
				targets = append(targets, t)
			}
			cfg, reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			resolved, err := reg.Resolve(targets...)
			if err != nil {
				return err
			}
			for _, u := range resolved {
				log.Info().Str("target", u.String()).Msg("Push requested")
			}
			r, err := a.renderer(cmd, cfg)
			if err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf(MsgPushNotImplemented, len(resolved)))
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
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
				return cmd.Root().GenBashCompletion(out)
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
