package meta

import (
	"fmt"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
)

// Bootstrap prepares the store for a new process: it creates the root and
// metadata directories, creates any missing built-in collection with its
// initial document, and starts a new session by zeroing the session counter
// and the uptime. The cumulative interaction total and the settings are
// kept.
func Bootstrap(store *storage.Store) error {
	if err := store.EnsurePath(); err != nil {
		return err
	}

	if !store.Exists(storage.SettingsCollection) {
		if err := SaveSettings(store, DefaultSettings()); err != nil {
			return fmt.Errorf("failed to create settings: %w", err)
		}
	}

	var in Interactions
	if store.Exists(storage.InteractionsCollection) {
		docs, err := store.LoadExisting(storage.InteractionsCollection)
		if err != nil {
			return fmt.Errorf("failed to read interactions: %w", err)
		}
		in = readInteractions(docs)
	}
	in.Session = 0
	if err := store.Save(storage.InteractionsCollection, []types.Document{interactionsDocument(in)}); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}

	if err := store.Save(storage.RuntimeCollection, []types.Document{{"uptime": 0}}); err != nil {
		return fmt.Errorf("failed to reset runtime: %w", err)
	}
	return nil
}
