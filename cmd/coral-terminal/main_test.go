package main

import (
	"testing"

	"github.com/ngmaloney/coral-terminal/internal/config"
)

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CORALWATCH_API_BASE_URL", "http://env.example/api")

	var got *config.Config
	cmd := newRootCmd(func(cfg *config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs([]string{
		"--api-url", "https://flag.example/api",
		"--route", "/coral/C123",
		"--db", "journal.db",
		"--log-level", "debug",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got == nil {
		t.Fatal("run function was not called")
	}
	if got.API.BaseURL != "https://flag.example/api" {
		t.Errorf("API.BaseURL = %s, flag should win over env", got.API.BaseURL)
	}
	if got.UI.StartRoute != "/coral/C123" {
		t.Errorf("UI.StartRoute = %s", got.UI.StartRoute)
	}
	if got.Journal.Path != "journal.db" {
		t.Errorf("Journal.Path = %s", got.Journal.Path)
	}
	if got.Log.Level != "debug" {
		t.Errorf("Log.Level = %s", got.Log.Level)
	}
}

func TestRootCmd_EnvUsedWithoutFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CORALWATCH_API_BASE_URL", "http://env.example/api")

	var got *config.Config
	cmd := newRootCmd(func(cfg *config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got.API.BaseURL != "http://env.example/api" {
		t.Errorf("API.BaseURL = %s, want env value", got.API.BaseURL)
	}
}

func TestRootCmd_InvalidRoute(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newRootCmd(func(*config.Config) error {
		t.Fatal("run should not be called with invalid config")
		return nil
	})
	cmd.SetArgs([]string{"--route", "dashboard"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for route without leading slash")
	}
}
