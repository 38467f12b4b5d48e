package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"monkey/interpreter-go/pkg/repl"
)

// ManifestFileName is the file FindManifest looks for.
const ManifestFileName = "monkey.yml"

// ErrManifestNotFound is returned by FindManifest when no manifest exists in
// the start directory or any of its parents.
var ErrManifestNotFound = errors.New("manifest: monkey.yml not found")

// Log levels accepted by the log.level field.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Manifest represents the parsed contents of monkey.yml.
type Manifest struct {
	Path        string
	Name        string
	REPL        REPLConfig
	Log         LogConfig
	Sources     map[string]string
	SourceOrder []string
}

// REPLConfig holds the shell settings.
type REPLConfig struct {
	Prompt  string
	History string
	Mode    repl.Mode
	Color   bool
}

// LogConfig is the log section; Level is one of the LogLevel constants.
type LogConfig struct {
	Level string
}

// DefaultManifest is used when no monkey.yml is present.
func DefaultManifest() *Manifest {
	return &Manifest{
		Name: "monkey",
		REPL: REPLConfig{
			Prompt: repl.DefaultPrompt,
			Mode:   repl.ModeRender,
			Color:  true,
		},
		Log:     LogConfig{Level: LogLevelInfo},
		Sources: map[string]string{},
	}
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

// FindManifest walks from start toward the filesystem root and returns the
// path of the first monkey.yml it finds.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// LoadManifest parses monkey.yml from disk, returning a validated manifest.
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

	manifest, issues := raw.toManifest(absPath)
	if err := manifest.validate(issues); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate(issues []string) error {
	errs := ValidationError{Issues: issues}
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	switch m.Log.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.level %q must be one of debug, info, warning, error", m.Log.Level))
	}
	for _, name := range m.SourceOrder {
		if m.Sources[name] == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources.%s must be a non-empty path", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// SourcePath returns the path registered under name.
func (m *Manifest) SourcePath(name string) (string, bool) {
	path, ok := m.Sources[strings.TrimSpace(name)]
	return path, ok
}

type manifestFile struct {
	Name    string    `yaml:"name"`
	REPL    replYAML  `yaml:"repl"`
	Log     logYAML   `yaml:"log"`
	Sources sourceMap `yaml:"sources"`
}

type replYAML struct {
	Prompt  *string `yaml:"prompt"`
	History string  `yaml:"history"`
	Mode    string  `yaml:"mode"`
	Color   *bool   `yaml:"color"`
}

type logYAML struct {
	Level string `yaml:"level"`
}

// sourceMap keeps the manifest's key order so check output is stable.
type sourceMap struct {
	items []sourceMapEntry
}

type sourceMapEntry struct {
	name string
	path string
}

func (sm *sourceMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		sm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		sm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: sources must be a mapping")
	}
	items := make([]sourceMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key, path string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: sources must not use empty keys")
		}
		if err := value.Content[i+1].Decode(&path); err != nil {
			return fmt.Errorf("manifest: source %q: %w", key, err)
		}
		items = append(items, sourceMapEntry{name: key, path: strings.TrimSpace(path)})
	}
	sm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) (*Manifest, []string) {
	var issues []string
	result := DefaultManifest()
	result.Path = path
	result.Name = strings.TrimSpace(mf.Name)

	if mf.REPL.Prompt != nil {
		result.REPL.Prompt = *mf.REPL.Prompt
	}
	if history := strings.TrimSpace(mf.REPL.History); history != "" {
		result.REPL.History = resolveRelative(path, history)
	}
	if mode := strings.TrimSpace(mf.REPL.Mode); mode != "" {
		parsed, err := repl.ParseMode(mode)
		if err != nil {
			issues = append(issues, fmt.Sprintf("repl.mode: %v", err))
		}
		result.REPL.Mode = parsed
	}
	if mf.REPL.Color != nil {
		result.REPL.Color = *mf.REPL.Color
	}
	if level := strings.ToLower(strings.TrimSpace(mf.Log.Level)); level != "" {
		result.Log.Level = level
	}

	result.Sources = make(map[string]string, len(mf.Sources.items))
	result.SourceOrder = make([]string, 0, len(mf.Sources.items))
	for _, entry := range mf.Sources.items {
		if _, dup := result.Sources[entry.name]; dup {
			issues = append(issues, fmt.Sprintf("sources.%s is declared more than once", entry.name))
			continue
		}
		resolved := ""
		if entry.path != "" {
			resolved = resolveRelative(path, entry.path)
		}
		result.Sources[entry.name] = resolved
		result.SourceOrder = append(result.SourceOrder, entry.name)
	}
	return result, issues
}

// resolveRelative anchors a manifest-relative path at the manifest's directory.
func resolveRelative(manifestPath, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(filepath.Dir(manifestPath), p)
}
