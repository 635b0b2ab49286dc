package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFilename is the project manifest looked up next to programs and
// in parent directories.
const ManifestFilename = "uninter.yml"

// ErrManifestNotFound reports that no manifest exists on the search path.
var ErrManifestNotFound = errors.New("uninter.yml not found")

// Manifest represents the parsed contents of uninter.yml.
type Manifest struct {
	Path    string
	Name    string
	Entry   string
	Options ManifestOptions
}

// ManifestOptions carries evaluation settings; CLI flags override them.
type ManifestOptions struct {
	MaxDepth int
}

type manifestFile struct {
	Name    string              `yaml:"name"`
	Entry   string              `yaml:"entry"`
	Options manifestOptionsFile `yaml:"options"`
}

type manifestOptionsFile struct {
	MaxDepth int `yaml:"max-depth"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses uninter.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := &Manifest{
		Path:  absPath,
		Name:  strings.TrimSpace(raw.Name),
		Entry: strings.TrimSpace(raw.Entry),
		Options: ManifestOptions{
			MaxDepth: raw.Options.MaxDepth,
		},
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var issues []string
	if m.Name == "" {
		issues = append(issues, "name must not be empty")
	}
	if m.Entry != "" && filepath.Ext(m.Entry) != ".json" {
		issues = append(issues, fmt.Sprintf("entry %q must be a .json file", m.Entry))
	}
	if m.Options.MaxDepth < 0 {
		issues = append(issues, "options.max-depth must not be negative")
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// EntryPath resolves the manifest's entry file relative to the manifest
// location.
func (m *Manifest) EntryPath() (string, error) {
	if m.Entry == "" {
		return "", fmt.Errorf("manifest %s declares no entry", m.Path)
	}
	if filepath.IsAbs(m.Entry) {
		return filepath.Clean(m.Entry), nil
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(m.Entry)), nil
}

// FindManifest walks from start toward the filesystem root looking for
// uninter.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFilename)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFilename, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}
