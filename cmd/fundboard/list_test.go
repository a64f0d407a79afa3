package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/fundboard/internal/config"
	"github.com/nao1215/fundboard/internal/report"
)

// decodeTitles parses JSON list output and returns the campaign titles.
func decodeTitles(t *testing.T, out string) []string {
	t.Helper()

	var doc report.JSONListing
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	titles := make([]string, 0, len(doc.Campaigns))
	for _, c := range doc.Campaigns {
		titles = append(titles, c.Title)
	}
	return titles
}

func TestListCmd(t *testing.T) {
	t.Run("default text listing", func(t *testing.T) {
		isolateConfig(t)

		out, _, err := executeCommand(t, "list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"FUNDRAISING CAMPAIGNS",
			"Sorted by:     Raised (Asc)",
			"1. Campaign A",
			"2. Campaign B",
			"3. Campaign C",
			"https://www.gofundme.com/campaignC",
			"Showing 3 of 3 campaigns",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q\n%s", want, out)
			}
		}
	})

	t.Run("sort flags", func(t *testing.T) {
		isolateConfig(t)

		tests := []struct {
			name string
			args []string
			want []string
		}{
			{
				name: "raised descending",
				args: []string{"list", "-j", "-O", "desc"},
				want: []string{"Campaign C", "Campaign B", "Campaign A"},
			},
			{
				name: "difference ascending by alias",
				args: []string{"list", "-j", "--sort", "difference"},
				want: []string{"Campaign B", "Campaign A", "Campaign C"},
			},
			{
				name: "difference descending",
				args: []string{"list", "-j", "-s", "difference_from_goal", "-O", "descending"},
				want: []string{"Campaign C", "Campaign A", "Campaign B"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				out, _, err := executeCommand(t, tt.args...)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if diff := cmp.Diff(tt.want, decodeTitles(t, out)); diff != "" {
					t.Errorf("order mismatch (-want +got):\n%s", diff)
				}
			})
		}
	})

	t.Run("fully funded toggle", func(t *testing.T) {
		dir := isolateConfig(t)
		data := filepath.Join(dir, "campaigns.yaml")
		content := `- title: Done
  url: https://example.com/done
  amount_raised: 500
  goal: 500
- title: Open
  url: https://example.com/open
  amount_raised: 10
  goal: 100
`
		if err := os.WriteFile(data, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write dataset: %v", err)
		}

		out, _, err := executeCommand(t, "list", "-j", "-d", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"Open"}, decodeTitles(t, out)); diff != "" {
			t.Errorf("hidden listing mismatch (-want +got):\n%s", diff)
		}

		out, _, err = executeCommand(t, "list", "-j", "-F", "-d", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"Open", "Done"}, decodeTitles(t, out)); diff != "" {
			t.Errorf("shown listing mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		isolateConfig(t)

		out, _, err := executeCommand(t, "list", "--markdown", "--currency", "€")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "# Fundraising Campaigns") {
			t.Errorf("expected markdown heading\n%s", out)
		}
		if !strings.Contains(out, "€") {
			t.Errorf("expected the configured currency symbol\n%s", out)
		}
	})

	t.Run("title from flag and environment", func(t *testing.T) {
		isolateConfig(t)

		out, _, err := executeCommand(t, "list", "-m", "--title", "Spring Appeal")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "# Spring Appeal") {
			t.Errorf("expected heading from --title\n%s", out)
		}

		t.Setenv("FUNDBOARD_TITLE", "Winter Drive")
		out, _, err = executeCommand(t, "list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "WINTER DRIVE") {
			t.Errorf("expected heading from FUNDBOARD_TITLE\n%s", out)
		}
	})

	t.Run("writes to output file", func(t *testing.T) {
		dir := isolateConfig(t)
		outputPath := filepath.Join(dir, "reports", "campaigns.json")

		out, _, err := executeCommand(t, "list", "-j", "-o", outputPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("expected nothing on stdout, got %q", out)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if got := decodeTitles(t, string(content)); len(got) != 3 {
			t.Errorf("expected 3 campaigns, got %v", got)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(outputPath)
			if err != nil {
				t.Fatalf("failed to stat output: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}
	})

	t.Run("errors", func(t *testing.T) {
		dir := isolateConfig(t)

		tests := []struct {
			name    string
			args    []string
			wantErr error
			wantMsg string
		}{
			{
				name:    "unknown sort key",
				args:    []string{"list", "--sort", "title"},
				wantErr: config.ErrInvalidSortKey,
			},
			{
				name:    "json and markdown together",
				args:    []string{"list", "-j", "-m"},
				wantMsg: "configuration error",
			},
			{
				name:    "missing dataset",
				args:    []string{"list", "-d", filepath.Join(dir, "missing.json")},
				wantMsg: "dataset not found",
			},
			{
				name:    "missing explicit config",
				args:    []string{"list", "-c", filepath.Join(dir, "missing.yaml")},
				wantErr: config.ErrConfigNotFound,
			},
			{
				name:    "unexpected argument",
				args:    []string{"list", "extra"},
				wantMsg: "unknown command",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := executeCommand(t, tt.args...)
				if err == nil {
					t.Fatal("expected error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("expected error containing %q, got %v", tt.wantMsg, err)
				}
			})
		}
	})
}

// TestConfigPrecedence checks defaults < config file < environment < flags.
func TestConfigPrecedence(t *testing.T) {
	dir := isolateConfig(t)

	content := "sort: difference_from_goal\norder: desc\n"
	if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, _, err := executeCommand(t, "list", "-j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Campaign C", "Campaign A", "Campaign B"}, decodeTitles(t, out)); diff != "" {
		t.Errorf("config file not applied (-want +got):\n%s", diff)
	}

	t.Setenv("FUNDBOARD_ORDER", "asc")
	out, _, err = executeCommand(t, "list", "-j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Campaign B", "Campaign A", "Campaign C"}, decodeTitles(t, out)); diff != "" {
		t.Errorf("environment not applied (-want +got):\n%s", diff)
	}

	out, _, err = executeCommand(t, "list", "-j", "-s", "raised", "-O", "desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Campaign C", "Campaign B", "Campaign A"}, decodeTitles(t, out)); diff != "" {
		t.Errorf("flags not applied (-want +got):\n%s", diff)
	}
}
