package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
)

func sampleTasks() []model.Task {
	a := model.NewTask("t1", "Buy milk")
	b := model.NewTask("t2", "Ship release")
	b.Completed = true
	b.Priority = model.PriorityHigh
	b.DueDate = model.DatePtr("2026-05-01")
	b.Labels = []string{"Work"}
	b.Subtasks = []model.Subtask{{ID: "s1", Text: "tag", Completed: true}}
	b.Comments = []string{"blocked on review"}
	return []model.Task{a, b}
}

func TestWriteJSONIsPersistedLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTasks(), FormatJSON); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  {\n    \"id\": \"t1\"") {
		t.Fatalf("expected indented output, got:\n%s", buf.String())
	}
	got, err := store.Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode exported json: %v", err)
	}
	if len(got) != 2 || got[1].Priority != model.PriorityHigh || *got[1].DueDate != "2026-05-01" {
		t.Fatalf("unexpected decoded tasks: %+v", got)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTasks(), FormatYAML); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	var got []model.Task
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("parse yaml: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[0].DueDate != nil || got[1].Subtasks[0].Text != "tag" {
		t.Fatalf("unexpected yaml tasks: %+v", got)
	}
	if !strings.Contains(buf.String(), "dueDate: \"2026-05-01\"") && !strings.Contains(buf.String(), "dueDate: 2026-05-01") {
		t.Fatalf("expected camelCase due date key:\n%s", buf.String())
	}
}

func TestWriteTOMLWrapsTasksTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTasks(), FormatTOML); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	if !strings.Contains(buf.String(), "[[tasks]]") {
		t.Fatalf("expected array of tables:\n%s", buf.String())
	}
	var doc tomlDocument
	if _, err := toml.Decode(buf.String(), &doc); err != nil {
		t.Fatalf("parse toml: %v\n%s", err, buf.String())
	}
	if len(doc.Tasks) != 2 || doc.Tasks[0].DueDate != nil || doc.Tasks[1].Comments[0] != "blocked on review" {
		t.Fatalf("unexpected toml tasks: %+v", doc.Tasks)
	}
}

func TestWriteEmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("unexpected empty export: %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" YML "); err != nil || f != FormatYAML {
		t.Fatalf("unexpected yml parse: %q %v", f, err)
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if err := Write(&bytes.Buffer{}, nil, Format("csv")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat from Write, got %v", err)
	}
}
