package cmd

import (
	"fmt"

	"github.com/ines/taskdeck/internal/api"
	"github.com/ines/taskdeck/internal/config"
	"github.com/ines/taskdeck/internal/output"
	"github.com/ines/taskdeck/internal/session"
)

// newSession builds the API client from config and rehydrates the session
// store from persisted credentials.
func newSession() (*api.Client, *session.Store, error) {
	client := api.New(config.ServerURL(), "").WithTimeout(config.Timeout())
	store := session.NewStore(client)
	store.Logf = output.Error
	if err := store.Rehydrate(); err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}
	return client, store, nil
}

// requireAuth is newSession plus a login check for protected commands.
func requireAuth() (*api.Client, *session.Store, error) {
	client, store, err := newSession()
	if err != nil {
		return nil, nil, err
	}
	if !store.Authenticated() {
		return nil, nil, fmt.Errorf("not logged in (run: taskdeck login)")
	}
	return client, store, nil
}
