// Package config provides the configuration loader for ghaf-build.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// DefaultFilename is the configuration file looked up in the working directory.
const DefaultFilename = "ghaf-build.yaml"

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
// A missing file yields the policy defaults.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader for the default configuration filename.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: DefaultFilename}
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (domain.Config, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, zerr.Wrap(err, "failed to read config file")
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	return domain.Config{
		FlakeRef:    file.Flake,
		Parallelism: file.Jobs,
		MaxFailures: file.MaxFailures,
		EvalWorkers: file.EvalWorkers,
		BuildArgs:   file.BuildArgs,
	}.Normalize(), nil
}

// configFile is the on-disk shape of ghaf-build.yaml.
type configFile struct {
	Flake       string   `yaml:"flake"`
	Jobs        int      `yaml:"jobs"`
	MaxFailures int      `yaml:"maxFailures"`
	EvalWorkers int      `yaml:"evalWorkers"`
	BuildArgs   []string `yaml:"buildArgs"`
}

// Ensure FileConfigLoader satisfies the interface.
var _ ports.ConfigLoader = (*FileConfigLoader)(nil)
