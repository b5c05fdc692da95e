package tui

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSSHServerShutdownSavesDuringDrain(t *testing.T) {
	store := newScoreStore(t)
	srv := &SSHServer{store: store, logger: log.New(io.Discard)}

	drained := false
	srv.drain = func(context.Context) error {
		// a session's game ends while the server waits for it
		if _, err := srv.store.SaveScore("board-a", "late", 70); err != nil {
			t.Errorf("SaveScore() during drain error = %v", err)
		}
		drained = true
		return nil
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !drained {
		t.Fatal("Shutdown() should drain sessions")
	}
	if srv.store != nil {
		t.Error("Shutdown() should close the store after draining")
	}
	if _, err := store.TopScores("board-a", 1); err == nil {
		t.Error("store should be closed after Shutdown()")
	}
}
