package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/fundboard/internal/config"
)

func TestServeCmd(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		cmd := NewServeCmd()
		addr := cmd.Flags().Lookup("addr")
		if addr == nil {
			t.Fatal("expected addr flag")
		}
		if addr.Shorthand != "a" {
			t.Errorf("expected shorthand 'a', got %q", addr.Shorthand)
		}
		if addr.DefValue != config.DefaultListenAddr {
			t.Errorf("expected default %q, got %q", config.DefaultListenAddr, addr.DefValue)
		}
		if cmd.Flags().Lookup("shutdown-timeout") == nil {
			t.Error("expected shutdown-timeout flag")
		}
	})

	t.Run("rejects address without port", func(t *testing.T) {
		isolateConfig(t)

		_, _, err := executeCommand(t, "serve", "-a", "localhost")
		if !errors.Is(err, config.ErrInvalidListenAddr) {
			t.Errorf("expected ErrInvalidListenAddr, got %v", err)
		}
	})

	t.Run("reports listen failure", func(t *testing.T) {
		isolateConfig(t)

		out, _, err := executeCommand(t, "serve", "-a", "127.0.0.1:-1")
		if err == nil {
			t.Fatal("expected listen error")
		}
		if !strings.Contains(out, "Serving 3 campaigns") {
			t.Errorf("expected startup line, got %q", out)
		}
	})

	t.Run("rejects zero shutdown timeout", func(t *testing.T) {
		isolateConfig(t)

		_, _, err := executeCommand(t, "serve", "--shutdown-timeout", "0s")
		if !errors.Is(err, config.ErrInvalidShutdownTimeout) {
			t.Errorf("expected ErrInvalidShutdownTimeout, got %v", err)
		}
	})
}
