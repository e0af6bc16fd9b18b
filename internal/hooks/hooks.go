// Package hooks evaluates placeholder hook scripts shipped with a skill.
//
// A hook is a Go source file in <skill_dir>/assets/hooks that declares
//
//	func Placeholders(kind, taskName string) (map[string]string, error)
//
// The file is interpreted with yaegi, so hooks need no build step.
package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

const funcName = "Placeholders"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Dir returns the hook directory for a skill directory.
func Dir(skillDir string) string {
	return filepath.Join(skillDir, "assets", "hooks")
}

// Hook is one interpreted hook file.
type Hook struct {
	Path string
	fn   reflect.Value
}

// Set runs hooks in file-name order.
type Set struct {
	hooks []Hook
}

// Len reports how many hooks were loaded.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.hooks)
}

// Paths lists the loaded hook files.
func (s *Set) Paths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, len(s.hooks))
	for i, h := range s.hooks {
		paths[i] = h.Path
	}
	return paths
}

// LoadDir interprets every .go file in dir. A missing directory yields an
// empty set.
func LoadDir(fsys afero.Fs, dir string) (*Set, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return &Set{}, nil
	}
	entries, err := afero.ReadDir(fsys, trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Set{}, nil
		}
		return nil, fmt.Errorf("hooks: read %s: %w", trimmed, err)
	}
	set := &Set{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".go" {
			continue
		}
		hook, err := loadFile(fsys, filepath.Join(trimmed, entry.Name()))
		if err != nil {
			return nil, err
		}
		set.hooks = append(set.hooks, hook)
	}
	sort.Slice(set.hooks, func(i, j int) bool { return set.hooks[i].Path < set.hooks[j].Path })
	return set, nil
}

func loadFile(fsys afero.Fs, path string) (Hook, error) {
	code, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Hook{}, fmt.Errorf("hooks: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return Hook{}, fmt.Errorf("hooks: %s is empty", path)
	}
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return Hook{}, fmt.Errorf("hooks: load stdlib for %s: %w", path, err)
	}
	if _, err := i.Eval(string(code)); err != nil {
		return Hook{}, fmt.Errorf("hooks: interpret %s: %w", path, err)
	}
	fn, err := i.Eval(funcName)
	if err != nil {
		return Hook{}, fmt.Errorf("hooks: %s must define %s(kind, taskName string) (map[string]string, error): %w", path, funcName, err)
	}
	if err := checkSignature(fn); err != nil {
		return Hook{}, fmt.Errorf("hooks: %s: %w", path, err)
	}
	return Hook{Path: path, fn: fn}, nil
}

func checkSignature(fn reflect.Value) error {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return fmt.Errorf("%s is not a function", funcName)
	}
	typ := fn.Type()
	if typ.NumIn() != 2 || typ.In(0).Kind() != reflect.String || typ.In(1).Kind() != reflect.String {
		return fmt.Errorf("%s must accept (kind, taskName string)", funcName)
	}
	if typ.NumOut() == 0 || typ.NumOut() > 2 {
		return fmt.Errorf("%s must return (map[string]string[, error])", funcName)
	}
	if out := typ.Out(0); out.Kind() != reflect.Map || out.Key().Kind() != reflect.String {
		return fmt.Errorf("%s must return map[string]string, not %s", funcName, out)
	}
	if typ.NumOut() == 2 && !typ.Out(1).Implements(errorType) {
		return fmt.Errorf("%s second result must be error, not %s", funcName, typ.Out(1))
	}
	return nil
}

// Placeholders merges the values every hook returns for a document kind.
// Later hooks win for duplicate keys.
func (s *Set) Placeholders(kind, taskName string) (map[string]string, error) {
	merged := map[string]string{}
	if s == nil {
		return merged, nil
	}
	for _, h := range s.hooks {
		values, err := h.call(kind, taskName)
		if err != nil {
			return nil, fmt.Errorf("hooks: %s: %w", h.Path, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	return merged, nil
}

func (h Hook) call(kind, taskName string) (map[string]string, error) {
	results := h.fn.Call([]reflect.Value{reflect.ValueOf(kind), reflect.ValueOf(taskName)})
	if len(results) == 2 && !results[1].IsNil() {
		if e, ok := results[1].Interface().(error); ok && e != nil {
			return nil, e
		}
		return nil, fmt.Errorf("%s returned non-error second value", funcName)
	}
	return toStringMap(results[0])
}

func toStringMap(value reflect.Value) (map[string]string, error) {
	if !value.IsValid() || (value.Kind() == reflect.Map && value.IsNil()) {
		return nil, nil
	}
	if m, ok := value.Interface().(map[string]string); ok {
		return m, nil
	}
	if value.Kind() != reflect.Map || value.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%s must return map[string]string", funcName)
	}
	out := make(map[string]string, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = fmt.Sprint(iter.Value().Interface())
	}
	return out, nil
}
