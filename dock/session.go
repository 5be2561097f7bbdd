// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/session.go
// Summary: Ties a tree to a persistence store and a user notifier.
// Usage: Persistence is the only user-visible failure path; problems
// surface as warnings through the notifier and the event bus, never as
// aborts.

package dock

// Store is the key-value persistence collaborator. Load returns (nil, nil)
// when the key has never been saved.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	List() ([]string, error)
	Delete(key string) error
}

// Notifier surfaces user-visible warnings; hosts plug their toast service
// in here.
type Notifier interface {
	Warn(msg string)
}

// NopNotifier discards warnings.
type NopNotifier struct{}

func (NopNotifier) Warn(string) {}

// Session binds a tree to a named slot in a store.
type Session struct {
	tree     *Tree
	store    Store
	registry *PanelRegistry
	notifier Notifier
	key      string
}

// NewSession creates a session. notifier may be nil.
func NewSession(tree *Tree, store Store, registry *PanelRegistry, notifier Notifier, key string) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Session{tree: tree, store: store, registry: registry, notifier: notifier, key: key}
}

// SaveLayout serializes the tree into the session's slot.
func (s *Session) SaveLayout() error {
	data, err := s.tree.ToJSON()
	if err != nil {
		s.warn("could not serialize layout: " + err.Error())
		return err
	}
	if err := s.store.Save(s.key, data); err != nil {
		s.warn("could not save layout: " + err.Error())
		return err
	}
	return nil
}

// LoadLayout restores the tree from the session's slot. The bool reports
// whether a saved layout existed.
func (s *Session) LoadLayout() (bool, error) {
	data, err := s.store.Load(s.key)
	if err != nil {
		s.warn("could not load layout: " + err.Error())
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := s.tree.FromJSON(data, s.registry); err != nil {
		s.warn("saved layout is unreadable: " + err.Error())
		return false, err
	}
	return true, nil
}

func (s *Session) warn(msg string) {
	logger.Warn(msg)
	s.notifier.Warn(msg)
	s.tree.dispatcher.Broadcast(Event{Type: EventPersistenceWarning, Payload: msg})
}
