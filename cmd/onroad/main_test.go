package main

import (
	"testing"
)

// TestFlagParsing tests that the CLI flags are correctly defined.
func TestFlagParsing(t *testing.T) {
	flag := runCmd.Flags().Lookup("metric")
	if flag == nil {
		t.Fatal("--metric flag not registered")
	}
	if flag.DefValue != "true" {
		t.Errorf("--metric default value = %q, want %q", flag.DefValue, "true")
	}

	flag = runCmd.Flags().Lookup("fps")
	if flag == nil {
		t.Fatal("--fps flag not registered")
	}
	if flag.DefValue != "20" {
		t.Errorf("--fps default value = %q, want %q", flag.DefValue, "20")
	}

	flag = runCmd.Flags().Lookup("demo")
	if flag == nil {
		t.Fatal("--demo flag not registered")
	}
	if flag.DefValue != "true" {
		t.Errorf("--demo default value = %q, want %q", flag.DefValue, "true")
	}

	flag = runCmd.Flags().Lookup("duration")
	if flag == nil {
		t.Fatal("--duration flag not registered")
	}
	if flag.DefValue != "0s" {
		t.Errorf("--duration default value = %q, want %q", flag.DefValue, "0s")
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "upgrade", "version"} {
		if !names[want] {
			t.Errorf("command %q not registered", want)
		}
	}
}
