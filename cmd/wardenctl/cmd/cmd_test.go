package cmd

import (
	"testing"
)

func TestRootCmd_Structure(t *testing.T) {
	if rootCmd.Use != "wardenctl" {
		t.Errorf("expected 'wardenctl', got '%s'", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("expected non-empty short description")
	}
	if rootCmd.RunE == nil {
		t.Error("expected root to default to the panel")
	}
}

func TestSubcommands_Registered(t *testing.T) {
	want := []string{
		"panel", "users", "invite", "config", "resync",
		"audit", "doctor", "demo", "login", "version",
	}
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestUsersCmd_Subcommands(t *testing.T) {
	want := []string{"list", "delete", "deauth", "remove-2fa"}
	registered := make(map[string]bool)
	for _, cmd := range usersCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("users subcommand %q not registered", name)
		}
	}
}

func TestConfigCmd_Subcommands(t *testing.T) {
	want := []string{"show", "edit", "reset", "export", "backup"}
	registered := make(map[string]bool)
	for _, cmd := range configCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("config subcommand %q not registered", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "server", "token", "log-level", "log-format"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not defined", name)
		}
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	if appVersion != "1.2.3" || appCommit != "abc123" || appDate != "2026-01-01" {
		t.Error("version info not propagated")
	}
}
