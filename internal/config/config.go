// File: internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const DefaultFileName = "config.yml"

var (
	ErrNotFound      = errors.New("config file not found")
	ErrMalformed     = errors.New("config file is malformed")
	ErrNoDirectories = errors.New("config file declares no directories")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Maps a label to the local directory pushed under it
type Directories map[string]string

// Reads and validates the directories file at path
func LoadDirectories(path string) (Directories, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return ParseDirectories(data, path)
}

// Decodes a YAML document whose top level maps labels to paths. source only labels errors.
func ParseDirectories(data []byte, source string) (Directories, error) {
	var dirs Directories

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&dirs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrNoDirectories, source)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, source, err)
	}

	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDirectories, source)
	}

	if err := dirs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, source, err)
	}

	return dirs, nil
}

// Checks that every label and every path is non-empty
func (d Directories) Validate() error {
	if err := validate.Var(map[string]string(d), "gt=0,dive,keys,required,endkeys,required"); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("empty label or directory (%d invalid entries)", len(validationErrs))
		}
		return err
	}
	return nil
}

// Returns a copy with '~' expanded and every path made absolute.
// Children are spawned with these paths as their working directory, so nothing relative survives.
func (d Directories) Resolve() (Directories, error) {
	resolved := make(Directories, len(d))
	for label, dir := range d {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return nil, fmt.Errorf("error expanding directory for '%s': %w", label, err)
		}

		abs, err := filepath.Abs(expanded)
		if err != nil {
			return nil, fmt.Errorf("error resolving directory for '%s': %w", label, err)
		}
		resolved[label] = abs
	}
	return resolved, nil
}

// Writes the mapping back as YAML, keys sorted
func SaveDirectories(path string, dirs Directories) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(map[string]string(dirs)); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
