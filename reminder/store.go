package reminder

import (
	"context"
	"encoding/json"
	"fmt"
)

// StoreKey is the key the reminder collection is stored under
const StoreKey = "reminders"

// Store persists the whole reminder collection
type Store interface {
	Load(ctx context.Context) ([]*Reminder, error)
	Save(ctx context.Context, reminders []*Reminder) error
}

// KV is a string keyed, string valued store
type KV interface {
	// Get returns ok=false when the key does not exist
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// KVStore keeps the collection as one JSON array under StoreKey
type KVStore struct {
	kv KV
}

// NewKVStore wraps a KV backend
func NewKVStore(kv KV) *KVStore {
	return &KVStore{kv: kv}
}

// Load the collection. A missing key is an empty collection.
func (s *KVStore) Load(ctx context.Context) ([]*Reminder, error) {
	val, ok, err := s.kv.Get(ctx, StoreKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", StoreKey, err)
	}

	if !ok || val == "" {
		return nil, nil
	}

	var reminders []*Reminder
	err = json.Unmarshal([]byte(val), &reminders)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal value for key %s: %w", StoreKey, err)
	}

	return reminders, nil
}

// Save the collection, replacing whatever was stored
func (s *KVStore) Save(ctx context.Context, reminders []*Reminder) error {
	if reminders == nil {
		reminders = []*Reminder{}
	}

	data, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("failed to JSON marshal reminders: %w", err)
	}

	err = s.kv.Set(ctx, StoreKey, string(data))
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", StoreKey, err)
	}

	return nil
}
