// claude-notify - Desktop and push notifications for Claude Code hooks
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/claude-notify

// Package cli provides the Cobra root command of claude-notify.
// One invocation parses flags, resolves configuration layers, picks a backend
// and sends a single notification; --validate and --show-config inspect the
// configuration instead of sending.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/claude-notify/internal/build"
	"github.com/ariel-frischer/claude-notify/internal/config"
	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
	"github.com/ariel-frischer/claude-notify/internal/logging"
	"github.com/ariel-frischer/claude-notify/internal/notify"
)

// options holds the parsed command-line flags
type options struct {
	typ        string
	title      string
	message    string
	subtitle   string
	backend    string
	urgency    string
	icon       string
	category   string
	action     string
	sound      string
	noSound    bool
	attach     string
	wait       bool
	test       bool
	validate   bool
	showConfig bool
	debug      bool
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "claude-notify [flags] [file]",
		Short: "Desktop and push notifications for Claude Code hooks",
		Long: `claude-notify sends one notification per invocation through a desktop
(notify-send, osascript, terminal-notifier, toast) or push (ntfy, pushover)
backend. The backend is auto-detected unless configured.

Configuration is read from ` + "`$XDG_CONFIG_HOME/claude-notify/config.json`" + ` and the
nearest ` + "`.claude-notify.json`" + ` between the working directory and your home.
Environment variables override flags, flags override project config, and
project config overrides global config.

Environment overrides:
  ` + strings.Join(config.EnvVars(), "\n  ") + `
  CLAUDE_NOTIFY_DEBUG (same as --debug)

Source: https://github.com/ariel-frischer/claude-notify`,
		Example: `  # Claude Code hook: the agent needs input
  claude-notify --type input

  # Custom text, critical urgency, named sound
  claude-notify --title "Build" --message "Tests failed" -u critical --sound=Basso

  # Send through ntfy regardless of config
  CLAUDE_NOTIFY_NTFY_TOPIC=my-topic claude-notify -b ntfy -t complete

  # Wait for the action button and print its id
  claude-notify -t input --action "focus=Focus Terminal" --wait

  # Check configuration files
  claude-notify --validate
  claude-notify --validate ./.claude-notify.json`,
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          positionalArgs(opts),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.debug = opts.debug || logging.DebugFromEnv(a.getenv)
			a.logger = logging.New(a.stderr, a.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.validate:
				return a.runValidate(args)
			case opts.showConfig:
				return a.runShowConfig(opts)
			default:
				return a.runSend(cmd.Context(), cmd, opts)
			}
		},
	}
	cmd.SetVersionTemplate(build.Info())

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&opts.typ, "type", "t", "", "Notification type: input, complete, error")
	f.StringVar(&opts.title, "title", "", "Notification title")
	f.StringVarP(&opts.message, "message", "m", "", "Notification message")
	f.StringVar(&opts.subtitle, "subtitle", "", "Subtitle (macOS backends)")
	f.StringVarP(&opts.backend, "backend", "b", "", "Backend: "+strings.Join(notify.Names(), ", "))
	f.StringVarP(&opts.urgency, "urgency", "u", "", "Urgency: low, normal, critical")
	f.StringVarP(&opts.icon, "icon", "i", "", "Icon file path or theme icon name")
	f.StringVarP(&opts.category, "category", "c", "", "Notification category hint")
	f.StringVarP(&opts.action, "action", "a", "", "Action button as id=label")
	f.StringVarP(&opts.sound, "sound", "s", "", "Play a sound; --sound=NAME selects a named sound")
	f.Lookup("sound").NoOptDefVal = "default"
	f.BoolVar(&opts.noSound, "no-sound", false, "Disable sound")
	f.StringVar(&opts.attach, "attach", "", "Attachment file path or URL (push backends)")
	f.BoolVarP(&opts.wait, "wait", "w", false, "Wait for a clicked action and print its id")
	f.BoolVar(&opts.test, "test", false, "Send a test notification")
	f.BoolVar(&opts.validate, "validate", false, "Validate config files ([file] or all existing layers)")
	f.BoolVar(&opts.showConfig, "show-config", false, "Print the effective configuration as YAML")
	f.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging on stderr")

	cmd.MarkFlagsMutuallyExclusive("sound", "no-sound")
	cmd.MarkFlagsMutuallyExclusive("validate", "show-config")
	cmd.MarkFlagsMutuallyExclusive("validate", "test")

	return cmd
}

// positionalArgs accepts a single file argument, and only for --validate.
func positionalArgs(opts *options) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		if !opts.validate {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("unexpected argument %q", args[0]),
				cmd.UseLine(),
				"Positional arguments are only accepted as the file for --validate",
				"Quote values that contain spaces, e.g. --message \"two words\"",
			)
		}
		if len(args) > 1 {
			return clierrors.NewArgumentError("--validate accepts at most one file")
		}
		return nil
	}
}

// execute runs the root command with args and returns the process exit code.
func execute(ctx context.Context, a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return a.report(cmd.ExecuteContext(ctx))
}

// Execute runs claude-notify with the process arguments. SIGINT and SIGTERM
// cancel a pending wait for an action.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, defaultApp(), os.Args[1:])
}
