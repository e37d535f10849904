package cli

import (
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/claude-notify/internal/config"
	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
	"github.com/ariel-frischer/claude-notify/internal/notify"
)

// effectiveConfig is the --show-config document
type effectiveConfig struct {
	config.Config   `yaml:",inline"`
	SelectedBackend string       `yaml:"selected_backend"`
	Sources         []shownLayer `yaml:"sources"`
	Warnings        []string     `yaml:"warnings,omitempty"`
}

type shownLayer struct {
	Scope  string `yaml:"scope"`
	Path   string `yaml:"path"`
	Status string `yaml:"status"`
}

// runShowConfig prints the merged configuration, where it came from and the
// backend a send would use. An unknown backend is printed and then reported.
func (a *app) runShowConfig(opts *options) error {
	cwd, home := a.paths()
	res, err := a.resolve(opts, cwd, home)
	if err != nil {
		return err
	}

	kind, selectErr := notify.Select(res.Config.Backend, a.platform())

	shown := res.Config
	shown.Backends = shown.Backends.Redacted()
	doc := effectiveConfig{
		Config:          shown,
		SelectedBackend: string(kind),
		Warnings:        res.Warnings,
	}
	for _, src := range res.Sources {
		doc.Sources = append(doc.Sources, shownLayer{Scope: string(src.Scope), Path: src.Path, Status: string(src.Status)})
	}

	enc := yaml.NewEncoder(a.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering configuration")
	}
	if err := enc.Close(); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering configuration")
	}
	return selectErr
}
