package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/todo/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"filter active", TypeFilter},
		{"theme dark", TypeTheme},
		{"move 3 1", TypeMove},
		{"priority high", TypePriority},
		{"delete", TypeDelete},
		{"/toggle", TypeToggle},
		{"OPEN", TypeOpen},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/add  call   mom ")
	if err != nil || cmd.Add.Title != "call   mom" {
		t.Fatalf("unexpected add: %+v %v", cmd.Add, err)
	}
	cmd, err = Parse("filter Completed")
	if err != nil || cmd.Filter.Mode != model.FilterCompleted {
		t.Fatalf("unexpected filter: %+v %v", cmd.Filter, err)
	}
	cmd, err = Parse("theme light")
	if err != nil || cmd.Theme.Dark {
		t.Fatalf("unexpected theme: %+v %v", cmd.Theme, err)
	}
	cmd, err = Parse("move 3 1")
	if err != nil || cmd.Move.From != 3 || cmd.Move.To != 1 {
		t.Fatalf("unexpected move: %+v %v", cmd.Move, err)
	}
	cmd, err = Parse("/priority LOW")
	if err != nil || cmd.Priority.Priority != model.PriorityLow {
		t.Fatalf("unexpected priority: %+v %v", cmd.Priority, err)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{"add", "add   ", "filter", "filter soon", "theme blue", "move 1", "move 0 2", "move a b", "priority", "priority urgent", "delete now"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/unknown do x"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteCursorCommands(t *testing.T) {
	var got []Type
	handlers := Handlers{
		Delete: func() (Result, error) { got = append(got, TypeDelete); return Result{}, nil },
		Toggle: func() (Result, error) { got = append(got, TypeToggle); return Result{}, nil },
		Open:   func() (Result, error) { got = append(got, TypeOpen); return Result{}, nil },
	}
	for _, in := range []string{"toggle", "open", "delete"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, handlers); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	if len(got) != 3 || got[0] != TypeToggle || got[1] != TypeOpen || got[2] != TypeDelete {
		t.Fatalf("unexpected dispatch order: %v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"filter all", "theme dark", "move 1 2", "priority high", "toggle"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}
