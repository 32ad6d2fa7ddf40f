package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keybinds/internal/config/kv"
	"github.com/dshills/keybinds/internal/config/notify"
)

// Change is delivered to subscribers after every save.
type Change struct {
	Bindings  Bindings
	Overrides Overrides
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(log logr.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// Store holds a schema, the user's overrides and their merge, persisting
// overrides as one JSON object under a storage key.
type Store struct {
	mu        sync.RWMutex
	schema    Schema
	key       string
	kv        kv.Store
	overrides Overrides
	bindings  Bindings
	notifier  *notify.Notifier[Change]
	log       logr.Logger
}

// NewStore creates a store and loads any persisted overrides. Missing or
// unreadable overrides start empty.
func NewStore(schema Schema, storageKey string, store kv.Store, opts ...StoreOption) *Store {
	s := &Store{
		schema:   schema.Clone(),
		key:      storageKey,
		kv:       store,
		notifier: notify.New[Change](),
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.overrides = s.load()
	s.bindings = Merge(s.schema, s.overrides)
	return s
}

func (s *Store) load() Overrides {
	raw, err := s.rawOverrides()
	if err != nil {
		s.log.V(1).Info("ignoring stored overrides", "key", s.key, "error", err.Error())
		return Overrides{}
	}

	overrides := Overrides{}
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		s.log.V(1).Info("ignoring stored overrides", "key", s.key, "error", err.Error())
		return Overrides{}
	}
	return overrides
}

// rawOverrides returns the persisted blob, or "{}" when it is missing or
// not a JSON object.
func (s *Store) rawOverrides() (string, error) {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return "{}", err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return "{}", nil
	}
	if !gjson.Valid(raw) {
		return "{}", fmt.Errorf("stored overrides are not valid JSON")
	}
	if !gjson.Parse(raw).IsObject() {
		return "{}", fmt.Errorf("stored overrides are not a JSON object")
	}
	return raw, nil
}

// Get returns a copy of the current merged bindings.
func (s *Store) Get() Bindings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bindings.Clone()
}

// Overrides returns a copy of the current overrides. Changing it has no
// effect until it is passed to Save.
func (s *Store) Overrides() Overrides {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrides.Clone()
}

// Schema returns a copy of the store's schema.
func (s *Store) Schema() Schema {
	return s.schema.Clone()
}

// StorageKey returns the key overrides are persisted under.
func (s *Store) StorageKey() string {
	return s.key
}

// Save replaces all overrides, persists them and notifies subscribers.
func (s *Store) Save(overrides Overrides) error {
	if overrides == nil {
		overrides = Overrides{}
	}
	raw, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encoding overrides: %w", err)
	}
	return s.commit(string(raw), overrides.Clone())
}

// SaveOne sets the override for a single command, leaving the rest of the
// persisted overrides untouched.
func (s *Store) SaveOne(id string, o Override) error {
	if _, ok := s.schema[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, id)
	}
	value, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encoding override %q: %w", id, err)
	}
	return s.patch(func(raw string) (string, error) {
		return sjson.SetRaw(raw, escapePath(id), string(value))
	})
}

// Reset removes the override for id so it falls back to the schema.
func (s *Store) Reset(id string) error {
	return s.patch(func(raw string) (string, error) {
		return sjson.Delete(raw, escapePath(id))
	})
}

func (s *Store) patch(edit func(raw string) (string, error)) error {
	raw, err := s.rawOverrides()
	if err != nil {
		s.log.V(1).Info("replacing stored overrides", "key", s.key, "error", err.Error())
	}
	raw, err = edit(raw)
	if err != nil {
		return fmt.Errorf("patching overrides: %w", err)
	}

	overrides := Overrides{}
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return fmt.Errorf("decoding overrides: %w", err)
	}
	return s.commit(raw, overrides)
}

func (s *Store) commit(raw string, overrides Overrides) error {
	if err := s.kv.Set(s.key, raw); err != nil {
		return fmt.Errorf("persisting overrides: %w", err)
	}
	s.apply(overrides)
	return nil
}

// Reload re-reads persisted overrides, for example after the backing file
// changed, and notifies subscribers.
func (s *Store) Reload() error {
	s.apply(s.load())
	return nil
}

func (s *Store) apply(overrides Overrides) {
	bindings := Merge(s.schema, overrides)

	s.mu.Lock()
	s.overrides = overrides
	s.bindings = bindings
	s.mu.Unlock()

	s.notifier.Notify(Change{Bindings: bindings.Clone(), Overrides: overrides.Clone()})
}

// Subscribe registers fn to be called synchronously after every save.
func (s *Store) Subscribe(fn func(Change)) *notify.Subscription {
	return s.notifier.Subscribe(fn)
}

// Close drops all subscribers.
func (s *Store) Close() {
	s.notifier.Close()
}

// escapePath turns a command ID into a single-segment gjson/sjson path.
func escapePath(id string) string {
	return gjson.Escape(id)
}
