package meta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arthur-debert/nanodoc/testutil"
	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/go-cmp/cmp"
)

const (
	settingsFile     = "/db/.meta/settings.col.json"
	interactionsFile = "/db/.meta/interactions.col.json"
	runtimeFile      = "/db/.meta/runtime.col.json"
)

func TestBootstrap(t *testing.T) {
	store, mockFS := testutil.NewMockStore(t)

	if err := Bootstrap(store); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	for _, path := range []string{settingsFile, interactionsFile, runtimeFile} {
		if !mockFS.FileExists(path) {
			t.Errorf("expected %s to exist", path)
		}
	}

	settings, err := LoadSettings(store)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultSettings(), settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	uptime, err := Uptime(store)
	if err != nil || uptime != 0 {
		t.Errorf("expected zero uptime, got %v, %v", uptime, err)
	}
}

func TestBootstrapStartsNewSession(t *testing.T) {
	store, mockFS := testutil.NewMockStore(t)
	mockFS.SetFileContent(interactionsFile, []byte(`[{"session": 4, "total": 10}]`))
	mockFS.SetFileContent(runtimeFile, []byte(`[{"uptime": 30}]`))
	mockFS.SetFileContent(settingsFile, []byte(`[{"countInteractions": false, "tickSeconds": 2}]`))

	if err := Bootstrap(store); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	got, err := NewCounters(store, true, nil).Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Interactions{Session: 0, Total: 10}, got); diff != "" {
		t.Errorf("counters mismatch (-want +got):\n%s", diff)
	}
	if uptime, _ := Uptime(store); uptime != 0 {
		t.Errorf("uptime should restart at zero, got %v", uptime)
	}
	settings, _ := LoadSettings(store)
	if settings.CountInteractions || settings.TickInterval != 2*time.Second {
		t.Errorf("existing settings must be kept, got %+v", settings)
	}
}

func TestBootstrapCorruptInteractions(t *testing.T) {
	store, mockFS := testutil.NewMockStore(t)
	mockFS.SetFileContent(interactionsFile, []byte(`nope`))

	if err := Bootstrap(store); !errors.Is(err, types.ErrCorruptCollection) {
		t.Errorf("expected ErrCorruptCollection, got %v", err)
	}
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Settings
		wantErr error
	}{
		{
			name: "missing collection",
			want: DefaultSettings(),
		},
		{
			name:    "empty collection",
			content: `[]`,
			want:    DefaultSettings(),
		},
		{
			name:    "partial document",
			content: `[{"countInteractions": false}]`,
			want:    Settings{CountInteractions: false, TickInterval: time.Second},
		},
		{
			name:    "fractional interval",
			content: `[{"tickSeconds": 0.25}]`,
			want:    Settings{CountInteractions: true, TickInterval: 250 * time.Millisecond},
		},
		{
			name:    "non-positive interval ignored",
			content: `[{"tickSeconds": 0}]`,
			want:    DefaultSettings(),
		},
		{
			name:    "wrong type",
			content: `[{"countInteractions": "yes"}]`,
			wantErr: types.ErrSchemaViolation,
		},
		{
			name:    "corrupt",
			content: `{`,
			wantErr: types.ErrCorruptCollection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mockFS := testutil.NewMockStore(t)
			if tt.content != "" {
				mockFS.SetFileContent(settingsFile, []byte(tt.content))
			}
			got, err := LoadSettings(store)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	store, _ := testutil.NewMockStore(t)
	want := Settings{CountInteractions: false, TickInterval: 1500 * time.Millisecond}

	if err := SaveSettings(store, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSettings(store)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestCounters(t *testing.T) {
	t.Run("increments session and total", func(t *testing.T) {
		store, _ := testutil.NewMockStore(t)
		if err := Bootstrap(store); err != nil {
			t.Fatal(err)
		}
		c := NewCounters(store, true, nil)
		for i := 0; i < 3; i++ {
			c.RecordInteraction()
		}
		got, err := c.Snapshot()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(Interactions{Session: 3, Total: 3}, got); diff != "" {
			t.Errorf("counters mismatch (-want +got):\n%s", diff)
		}

		if err := c.ResetSession(); err != nil {
			t.Fatal(err)
		}
		got, _ = c.Snapshot()
		if diff := cmp.Diff(Interactions{Session: 0, Total: 3}, got); diff != "" {
			t.Errorf("counters after reset mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("disabled counters do nothing", func(t *testing.T) {
		store, mockFS := testutil.NewMockStore(t)
		if err := Bootstrap(store); err != nil {
			t.Fatal(err)
		}
		writes := mockFS.Writes
		c := NewCounters(store, false, nil)
		c.RecordInteraction()
		if mockFS.Writes != writes {
			t.Error("disabled counters must not write")
		}
		if c.Enabled() {
			t.Error("expected disabled")
		}
	})

	t.Run("missing collection is swallowed", func(t *testing.T) {
		store, mockFS := testutil.NewMockStore(t)
		c := NewCounters(store, true, nil)
		c.RecordInteraction()
		if mockFS.FileExists(interactionsFile) {
			t.Error("recording must not create the interactions collection")
		}
		if _, err := c.Snapshot(); !errors.Is(err, types.ErrMissingCollection) {
			t.Errorf("expected ErrMissingCollection, got %v", err)
		}
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		store, mockFS := testutil.NewMockStore(t)
		if err := Bootstrap(store); err != nil {
			t.Fatal(err)
		}
		mockFS.WriteFileError = errors.New("disk full")
		NewCounters(store, true, nil).RecordInteraction()
	})
}

func TestTick(t *testing.T) {
	store, mockFS := testutil.NewMockStore(t)
	if err := Bootstrap(store); err != nil {
		t.Fatal(err)
	}
	tk := NewTicker(store, 0, nil)
	if tk.Interval() != DefaultTickInterval {
		t.Errorf("expected default interval, got %v", tk.Interval())
	}

	for i := 0; i < 2; i++ {
		if err := tk.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if uptime, _ := Uptime(store); uptime != 2 {
		t.Errorf("expected uptime 2, got %v", uptime)
	}

	mockFS.SetFileContent(runtimeFile, []byte(`garbage`))
	if err := tk.Tick(); !errors.Is(err, types.ErrCorruptCollection) {
		t.Errorf("expected ErrCorruptCollection, got %v", err)
	}
}

func TestTickerKeepsRunningAfterFailure(t *testing.T) {
	store, mockFS := testutil.NewMockStore(t)
	if err := Bootstrap(store); err != nil {
		t.Fatal(err)
	}
	mockFS.SetFileContent(runtimeFile, []byte(`garbage`))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewTicker(store, 5*time.Millisecond, nil).Run(ctx)
	}()

	// Let a few ticks fail, then repair the file.
	time.Sleep(30 * time.Millisecond)
	mockFS.SetFileContent(runtimeFile, []byte(`[{"uptime": 0}]`))

	deadline := time.Now().Add(5 * time.Second)
	for {
		uptime, err := Uptime(store)
		if err == nil && uptime > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("ticker did not recover: uptime %v, err %v", uptime, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ticker did not stop")
	}
}
