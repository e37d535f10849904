package cli

import (
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/ariel-frischer/claude-notify/internal/logging"
	"github.com/ariel-frischer/claude-notify/internal/notify"
)

// app holds everything an invocation touches outside its own memory.
// Tests swap fields to run the whole command without real tools or a real home.
type app struct {
	stdout io.Writer
	stderr io.Writer

	getwd   func() (string, error)
	homeDir func() (string, error)
	getenv  func(string) string
	now     func() time.Time
	goos    string

	runner     notify.Runner
	httpClient *http.Client
	secrets    notify.SecretStore

	// debug and logger are set per invocation once flags are parsed
	debug  bool
	logger zerolog.Logger
}

func defaultApp() *app {
	return &app{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		getwd:      os.Getwd,
		homeDir:    os.UserHomeDir,
		getenv:     os.Getenv,
		now:        time.Now,
		goos:       runtime.GOOS,
		runner:     notify.ExecRunner{},
		httpClient: &http.Client{},
		secrets:    config.NewKeyringStore(),
		logger:     logging.Nop(),
	}
}

func (a *app) platform() notify.Platform {
	return notify.Platform{
		GOOS:     a.goos,
		LookPath: a.runner.LookPath,
		Getenv:   a.getenv,
	}
}

// paths returns the working and home directories. Either may be empty when it
// cannot be determined; project config lookup is then skipped.
func (a *app) paths() (cwd, home string) {
	var err error
	if home, err = a.homeDir(); err != nil {
		a.logger.Debug().Err(err).Msg("home directory unknown")
		home = ""
	}
	if cwd, err = a.getwd(); err != nil {
		a.logger.Debug().Err(err).Msg("working directory unknown")
		cwd = ""
	}
	return cwd, home
}
