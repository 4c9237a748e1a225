package main

import (
	"testing"
	"time"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("DOSELY_TEST_KEY", "")
	if got := getEnv("DOSELY_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv("DOSELY_TEST_KEY", "value")
	if got := getEnv("DOSELY_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected env value, got %q", got)
	}
}

func TestMustLoadLocationFallsBackToUTC(t *testing.T) {
	if location := mustLoadLocation("Not/AZone"); location != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", location)
	}

	location := mustLoadLocation("Europe/Berlin")
	if location.String() != "Europe/Berlin" {
		t.Fatalf("expected Europe/Berlin, got %v", location)
	}
}

func TestRunSubcommandRejectsUnknownCommand(t *testing.T) {
	if err := runSubcommand("ignored.db", []string{"frobnicate"}); err == nil {
		t.Fatal("expected usage error for unknown subcommand")
	}
}
