package notify

import (
	"context"
	"fmt"
	"strings"
)

// DefaultToastAppID is the AUMID of Windows PowerShell, which is registered on
// every Windows install and therefore allowed to raise toasts.
const DefaultToastAppID = `{1AC14E77-02E7-4E5D-B744-2EB1AE5198B7}\WindowsPowerShell\v1.0\powershell.exe`

// toastSender implements Sender for Windows toast notifications via PowerShell.
// When the BurntToast module is installed it is used instead of raw WinRT calls.
type toastSender struct {
	settings ToastSettings
	runner   Runner
	deps     Deps
}

func init() {
	register(KindToast, func(d Deps) Sender {
		return &toastSender{settings: d.Settings.Toast, runner: d.Runner, deps: d}
	})
}

func (s *toastSender) Kind() Kind { return KindToast }

func (s *toastSender) Send(ctx context.Context, req Request) (Result, error) {
	shell := s.powershell()
	script := toastScript(req, s.appID())
	if s.hasBurntToast(ctx, shell) {
		s.deps.Logger.Debug().Msg("using BurntToast module")
		script = burntToastScript(req)
	}
	_, err := runTool(ctx, s.runner, KindToast, shell,
		"-ExecutionPolicy", "Bypass", "-NoProfile", "-NonInteractive", "-Command", script)
	return Result{}, err
}

// powershell prefers Windows PowerShell and falls back to PowerShell 7.
func (s *toastSender) powershell() string {
	if _, err := s.runner.LookPath("powershell"); err == nil {
		return "powershell"
	}
	if _, err := s.runner.LookPath("pwsh"); err == nil {
		return "pwsh"
	}
	return "powershell"
}

func (s *toastSender) hasBurntToast(ctx context.Context, shell string) bool {
	out, err := s.runner.Run(ctx, shell, "-NoProfile", "-NonInteractive", "-Command",
		"if (Get-Module -ListAvailable -Name BurntToast) { 'yes' }")
	return err == nil && strings.TrimSpace(string(out.Stdout)) == "yes"
}

func (s *toastSender) appID() string {
	if s.settings.AppID != "" {
		return s.settings.AppID
	}
	return DefaultToastAppID
}

// toastXML renders the toast payload. All text is XML-escaped, which also
// removes every single quote, so the payload can never terminate the
// single-quoted here-string it is embedded in.
func toastXML(req Request) string {
	var b strings.Builder
	b.WriteString(`<toast`)
	if req.Urgency == UrgencyCritical {
		b.WriteString(` scenario="urgent"`)
	}
	b.WriteString(`><visual><binding template="ToastGeneric">`)
	fmt.Fprintf(&b, `<text>%s</text><text>%s</text>`, escapeXML(req.Title), escapeXML(req.Message))
	if req.Subtitle != "" {
		fmt.Fprintf(&b, `<text>%s</text>`, escapeXML(req.Subtitle))
	}
	if iconFile(req.Icon) {
		fmt.Fprintf(&b, `<image placement="appLogoOverride" src="%s"/>`, escapeXML(req.Icon))
	}
	b.WriteString(`</binding></visual>`)
	if !req.Sound.Enabled {
		b.WriteString(`<audio silent="true"/>`)
	} else {
		fmt.Fprintf(&b, `<audio src="%s"/>`, escapeXML(windowsSound(req.Sound)))
	}
	b.WriteString(`</toast>`)
	return b.String()
}

func toastScript(req Request, appID string) string {
	return fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$xml = @'
%s
'@
$doc = New-Object Windows.Data.Xml.Dom.XmlDocument
$doc.LoadXml($xml)
$toast = [Windows.UI.Notifications.ToastNotification]::new($doc)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast)
`, toastXML(req), psQuote(appID))
}

func burntToastScript(req Request) string {
	text := []string{psQuote(req.Title), psQuote(req.Message)}
	if req.Subtitle != "" {
		text = append(text, psQuote(req.Subtitle))
	}
	var b strings.Builder
	b.WriteString("Import-Module BurntToast; New-BurntToastNotification -Text ")
	b.WriteString(strings.Join(text, ", "))
	if iconFile(req.Icon) {
		b.WriteString(" -AppLogo " + psQuote(req.Icon))
	}
	if !req.Sound.Enabled {
		b.WriteString(" -Silent")
	}
	return b.String()
}

// windowsSound accepts ms-winsoundevent URIs as names; macOS-style names such
// as the preset sounds fall back to the default toast sound.
func windowsSound(s Sound) string {
	if strings.HasPrefix(s.Name, "ms-winsoundevent:") {
		return s.Name
	}
	return "ms-winsoundevent:Notification.Default"
}
