// Package export writes the task list in interchange formats.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// TOML has no top-level arrays.
type tomlDocument struct {
	Tasks []model.Task `toml:"tasks"`
}

// Write encodes tasks to w. JSON output is the persisted layout, indented.
func Write(w io.Writer, tasks []model.Task, format Format) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	switch format {
	case FormatJSON:
		raw, err := store.Encode(tasks)
		if err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		buf.WriteByte('\n')
		if _, err := buf.WriteTo(w); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tomlDocument{Tasks: tasks}); err != nil {
			return fmt.Errorf("export toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}
