package notify

import (
	"context"
	"path/filepath"
	"strings"
)

// Notifications share one group so a new one replaces the last.
const defaultTerminalNotifierGroup = "claude-notify"

// terminal-notifier prints these instead of an action label when the user
// clicked the body, the notification timed out, or it was dismissed.
var terminalNotifierSentinels = map[string]bool{
	"@CONTENTCLICKED": true,
	"@TIMEOUT":        true,
	"@CLOSED":         true,
}

type terminalNotifierSender struct {
	settings TerminalNotifierSettings
	runner   Runner
}

func init() {
	register(KindTerminalNotifier, func(d Deps) Sender {
		return &terminalNotifierSender{settings: d.Settings.TerminalNotifier, runner: d.Runner}
	})
}

func (s *terminalNotifierSender) Kind() Kind { return KindTerminalNotifier }

func (s *terminalNotifierSender) Send(ctx context.Context, req Request) (Result, error) {
	wait := req.Wait && req.Action != ""
	out, err := runTool(ctx, s.runner, KindTerminalNotifier, "terminal-notifier", s.args(req, wait)...)
	if err != nil || !wait {
		return Result{}, err
	}

	clicked := strings.TrimSpace(string(out.Stdout))
	if clicked == "" || terminalNotifierSentinels[clicked] {
		return Result{}, nil
	}
	if clicked == req.ActionLabel() {
		clicked = req.ActionID()
	}
	return Result{ActionID: clicked}, nil
}

func (s *terminalNotifierSender) args(req Request, wait bool) []string {
	args := []string{
		"-title", req.Title,
		"-message", escapeNotifierMessage(req.Message),
	}
	if req.Subtitle != "" {
		args = append(args, "-subtitle", req.Subtitle)
	}
	if req.Sound.Enabled {
		name := req.Sound.Name
		if name == "" {
			name = "default"
		}
		args = append(args, "-sound", name)
	}
	if iconFile(req.Icon) {
		if strings.EqualFold(filepath.Ext(req.Icon), ".icns") {
			args = append(args, "-appIcon", req.Icon)
		} else {
			args = append(args, "-contentImage", req.Icon)
		}
	}
	group := s.settings.Group
	if group == "" {
		group = defaultTerminalNotifierGroup
	}
	args = append(args, "-group", group)
	if s.settings.Sender != "" {
		args = append(args, "-sender", s.settings.Sender)
	}
	if wait {
		args = append(args, "-actions", req.ActionLabel())
	}
	return args
}

// escapeNotifierMessage stops terminal-notifier from reading a message that
// starts with "-" or "[" as an option or a list.
func escapeNotifierMessage(msg string) string {
	if strings.HasPrefix(msg, "-") || strings.HasPrefix(msg, "[") {
		return `\` + msg
	}
	return msg
}
