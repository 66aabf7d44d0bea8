package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/nanodoc/types"
	"github.com/fsnotify/fsnotify"
)

func TestWatch(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "db"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan fsnotify.Op, 16)
	err := s.Watch(ctx, "users", func(name string, op fsnotify.Op) {
		if name != "users" {
			t.Errorf("unexpected collection name %q", name)
		}
		select {
		case changes <- op:
		default:
		}
	})
	if err != nil {
		t.Fatalf("failed to watch: %v", err)
	}

	// Unrelated collections are ignored.
	if err := s.Save("orders", []types.Document{{"_id": "o"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("users", []types.Document{{"_id": "u"}}); err != nil {
		t.Fatal(err)
	}

	select {
	case op := <-changes:
		if op&(fsnotify.Create|fsnotify.Write) == 0 {
			t.Errorf("expected create or write, got %v", op)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
