package main

import (
	"testing"
)

// TestNewRoutesCmd tests the routes command creation.
func TestNewRoutesCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRoutesCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "routes" {
			t.Errorf("expected use 'routes', got %q", cmd.Use)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		names := make(map[string]bool)
		for _, sub := range cmd.Commands() {
			names[sub.Name()] = true
		}
		for _, want := range []string{"list", "save", "delete"} {
			if !names[want] {
				t.Errorf("expected %q subcommand", want)
			}
		}
	})

	t.Run("save has point and file flags", func(t *testing.T) {
		t.Parallel()
		save := newRoutesSaveCmd()
		point := save.Flags().Lookup("point")
		if point == nil {
			t.Fatal("expected point flag")
		}
		if point.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", point.Shorthand)
		}
		if save.Flags().Lookup("file") == nil {
			t.Error("expected file flag")
		}
	})

	t.Run("list has offline flag", func(t *testing.T) {
		t.Parallel()
		if newRoutesListCmd().Flags().Lookup("offline") == nil {
			t.Error("expected offline flag")
		}
	})
}
