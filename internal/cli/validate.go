package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/claude-notify/internal/config"
)

// runValidate checks the named file, or every config layer that exists.
// Each file gets either a success line or an error block on stdout; any
// invalid file makes the exit code 1.
func (a *app) runValidate(args []string) error {
	var paths []string
	if len(args) == 1 {
		paths = append(paths, args[0])
	} else {
		cwd, home := a.paths()
		global := config.UserConfigPath(a.getenv, home)
		if _, err := os.Stat(global); err == nil {
			paths = append(paths, global)
		}
		if project, ok := config.FindProjectConfig(cwd, home); ok {
			paths = append(paths, project)
		}
	}

	if len(paths) == 0 {
		fmt.Fprintln(a.stdout, "✓ No configuration files found; built-in defaults apply")
		return nil
	}

	failed := false
	for _, path := range paths {
		report := config.ValidateFile(path)
		a.logger.Debug().Str("path", path).Int("errors", len(report.Errors)).Msg("validated config file")
		if report.Valid() {
			fmt.Fprintf(a.stdout, "✓ Configuration is valid: %s\n", path)
			continue
		}
		failed = true
		fmt.Fprintf(a.stdout, "Validation errors in %s:\n", path)
		for _, e := range report.Errors {
			fmt.Fprintf(a.stdout, "  - %s\n", e)
		}
	}

	if failed {
		return NewExitError(ExitFailure)
	}
	return nil
}
