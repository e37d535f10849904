// Package notify builds and delivers claude-notify notifications.
//
// A notification starts as a Type (input, complete, error or none) whose
// built-in Preset supplies default content. BuildRequest layers per-type config
// overrides and command-line flags on top of the preset to produce an immutable
// Request. Select picks a backend Kind, either explicitly or by platform
// detection, and New constructs the matching Sender from the registry.
//
// # Backends
//
//   - notify-send: Linux desktop notifications over D-Bus, falling back to the notify-send binary
//   - osascript: macOS display notification via AppleScript
//   - terminal-notifier: macOS notifications with actions
//   - toast: Windows toasts via PowerShell, using BurntToast when installed
//   - ntfy: HTTP push to an ntfy topic
//   - pushover: HTTP push to the Pushover API
//   - none: sends nothing
//
// Each backend file registers itself in init, so adding a backend never edits
// a central switch. External tools run through a Runner so tests never raise
// real notifications.
//
// # Usage
//
//	req, err := notify.BuildRequest(notify.LayerInput{Type: notify.TypeComplete})
//	kind, err := notify.Select("auto", platform)
//	sender, err := notify.New(kind, notify.Deps{Settings: cfg.Backends})
//	res, err := notify.NewHandler(sender, logger).Dispatch(ctx, req)
package notify
