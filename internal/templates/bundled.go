package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

//go:embed bundled/*.md
var bundled embed.FS

// Bundled returns the default text shipped for a template name.
func Bundled(name string) (string, error) {
	data, err := bundled.ReadFile(path.Join("bundled", name))
	if err != nil {
		return "", fmt.Errorf("templates: %s is not bundled: %w", name, err)
	}
	return string(data), nil
}

// Install writes every bundled template missing from skillDir and returns
// the paths it created. Existing templates are never overwritten.
func Install(fsys afero.Fs, skillDir string) ([]string, error) {
	if skillDir == "" {
		return nil, fmt.Errorf("templates: skill directory is empty")
	}
	dir := Dir(skillDir)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("templates: prepare %s: %w", dir, err)
	}
	var written []string
	for _, name := range Names() {
		target := filepath.Join(dir, name)
		if _, err := fsys.Stat(target); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("templates: stat %s: %w", target, err)
		}
		content, err := Bundled(name)
		if err != nil {
			return written, err
		}
		if err := afero.WriteFile(fsys, target, []byte(content), 0o644); err != nil {
			return written, fmt.Errorf("templates: write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
