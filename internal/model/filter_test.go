package model

import (
	"errors"
	"testing"
)

func filterFixture() []Task {
	a := NewTask("a", "first")
	b := NewTask("b", "second")
	b.Completed = true
	c := NewTask("c", "third")
	return []Task{a, b, c}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestApplyFilterModes(t *testing.T) {
	tasks := filterFixture()
	cases := []struct {
		mode Filter
		want []string
	}{
		{FilterAll, []string{"a", "b", "c"}},
		{FilterActive, []string{"a", "c"}},
		{FilterCompleted, []string{"b"}},
		{Filter("bogus"), []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		got := ids(Apply(tasks, tc.mode))
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.mode, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: got %v, want %v", tc.mode, got, tc.want)
			}
		}
	}
	if ids(tasks)[1] != "b" || len(tasks) != 3 {
		t.Fatal("filtering mutated its input")
	}
}

func TestFilterCycleAndParse(t *testing.T) {
	if FilterAll.Next() != FilterActive || FilterActive.Next() != FilterCompleted || FilterCompleted.Next() != FilterAll {
		t.Fatal("unexpected filter cycle")
	}
	f, err := ParseFilter(" Completed ")
	if err != nil || f != FilterCompleted {
		t.Fatalf("parse completed: %q %v", f, err)
	}
	if _, err := ParseFilter("done"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if FilterActive.Label() != "Active" {
		t.Fatalf("unexpected label %q", FilterActive.Label())
	}
}
