package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// TestAddCreatesHolding checks that add appends a new record to a fresh
// holdings file.
func TestAddCreatesHolding(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "holdings.jsonl")

	oldHoldingsFile := holdingsFile
	holdingsFile = &tempFile
	defer func() { holdingsFile = oldHoldingsFile }()

	cmd := &addCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("symbol", "2330")
	f.Set("account", "cathay")
	f.Set("shares", "1000")
	f.Set("cost", "500")
	f.Set("date", "2023-01-01")

	status := cmd.Execute(context.Background(), f)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	got, err := os.ReadFile(tempFile)
	if err != nil {
		t.Fatalf("Failed to read holdings file: %v", err)
	}
	want := `{"symbol":"2330","account":"cathay","shares":1000,"costPrice":500,"currency":"TWD","purchaseDate":"2023-01-01","originalShares":1000}`
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("Holdings file mismatch.\nGot:\n%s\nWant:\n%s", string(got), want)
	}
}

// TestAddRejectsDuplicate checks that adding the same symbol to the
// same account fails and leaves the file untouched.
func TestAddRejectsDuplicate(t *testing.T) {
	original := `{"symbol":"2330","account":"cathay","shares":1000,"costPrice":500,"currency":"TWD","purchaseDate":"2023-01-01","originalShares":1000}
`
	tempFile := createTempHoldings(t, original)

	oldHoldingsFile := holdingsFile
	holdingsFile = &tempFile
	defer func() { holdingsFile = oldHoldingsFile }()

	cmd := &addCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("symbol", "2330")
	f.Set("account", "cathay")
	f.Set("shares", "500")
	f.Set("cost", "600")

	status := cmd.Execute(context.Background(), f)
	if status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure, got %v", status)
	}

	got, err := os.ReadFile(tempFile)
	if err != nil {
		t.Fatalf("Failed to read holdings file: %v", err)
	}
	if string(got) != original {
		t.Errorf("Duplicate add modified the file.\nGot:\n%s\nWant:\n%s", string(got), original)
	}
}

// TestAddMissingFlags checks the required-flag validation.
func TestAddMissingFlags(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "holdings.jsonl")

	oldHoldingsFile := holdingsFile
	holdingsFile = &tempFile
	defer func() { holdingsFile = oldHoldingsFile }()

	tests := []struct {
		name  string
		flags map[string]string
	}{
		{"no symbol", map[string]string{"shares": "1000", "cost": "500"}},
		{"no shares", map[string]string{"symbol": "2330", "cost": "500"}},
		{"no cost", map[string]string{"symbol": "2330", "shares": "1000"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &addCmd{}
			f := flag.NewFlagSet("test", flag.ContinueOnError)
			cmd.SetFlags(f)
			for k, v := range tc.flags {
				f.Set(k, v)
			}
			if status := cmd.Execute(context.Background(), f); status != subcommands.ExitUsageError {
				t.Errorf("Expected ExitUsageError, got %v", status)
			}
		})
	}
}

// TestRemoveHolding checks remove against an existing and a missing symbol.
func TestRemoveHolding(t *testing.T) {
	original := `{"symbol":"2330","account":"cathay","shares":1000,"costPrice":500,"currency":"TWD","purchaseDate":"2023-01-01","originalShares":1000}
{"symbol":"0056","account":"cathay","shares":3000,"costPrice":30,"currency":"TWD","purchaseDate":"2024-03-11","originalShares":3000}
`
	tempFile := createTempHoldings(t, original)

	oldHoldingsFile := holdingsFile
	holdingsFile = &tempFile
	defer func() { holdingsFile = oldHoldingsFile }()

	cmd := &removeCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("symbol", "2330")
	f.Set("account", "cathay")

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	got, err := os.ReadFile(tempFile)
	if err != nil {
		t.Fatalf("Failed to read holdings file: %v", err)
	}
	if strings.Contains(string(got), "2330") || !strings.Contains(string(got), "0056") {
		t.Errorf("Unexpected holdings after remove:\n%s", string(got))
	}

	// Removing an unknown symbol fails.
	cmd = &removeCmd{}
	f = flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("symbol", "9999")
	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure, got %v", status)
	}
}
