package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/MKhiriev/go-record-sync/models"
)

// memoryPersistence keeps everything in maps. With a path it also writes a
// JSON snapshot after every mutation and loads it on start.
type memoryPersistence struct {
	path string

	mu       sync.RWMutex
	records  map[string]map[string]models.RecordData
	pending  map[string]map[string]models.PendingEntry
	metadata map[string]string
}

type persistedState struct {
	Records  map[string]map[string]models.RecordData   `json:"records"`
	Pending  map[string]map[string]models.PendingEntry `json:"pending"`
	Metadata map[string]string                         `json:"metadata"`
}

// NewMemoryPersistence returns the default in-memory [LocalPersistence]. An
// empty path keeps nothing across restarts.
func NewMemoryPersistence(path string) (LocalPersistence, error) {
	s := &memoryPersistence{
		path:     path,
		records:  make(map[string]map[string]models.RecordData),
		pending:  make(map[string]map[string]models.PendingEntry),
		metadata: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func partitionKey(owner string, scope models.Scope) string {
	return scope.String() + "/" + owner
}

func (s *memoryPersistence) LoadRecords(_ context.Context, owner string, scope models.Scope) ([]models.RecordData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	part := s.records[partitionKey(owner, scope)]
	out := make([]models.RecordData, 0, len(part))
	for _, id := range slices.Sorted(maps.Keys(part)) {
		out = append(out, part[id])
	}
	return out, nil
}

func (s *memoryPersistence) SaveRecords(_ context.Context, owner string, scope models.Scope, records ...models.RecordData) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := partitionKey(owner, scope)
	part, ok := s.records[key]
	if !ok {
		part = make(map[string]models.RecordData)
		s.records[key] = part
	}
	for _, d := range records {
		part[d.ID] = d
	}
	return s.persist()
}

func (s *memoryPersistence) DeleteRecords(_ context.Context, owner string, scope models.Scope, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	part := s.records[partitionKey(owner, scope)]
	for _, id := range ids {
		delete(part, id)
	}
	return s.persist()
}

func (s *memoryPersistence) LoadPending(_ context.Context, owner string, scope models.Scope) ([]models.PendingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	part := s.pending[partitionKey(owner, scope)]
	out := make([]models.PendingEntry, 0, len(part))
	for _, id := range slices.Sorted(maps.Keys(part)) {
		out = append(out, part[id])
	}
	return out, nil
}

func (s *memoryPersistence) SetPending(_ context.Context, owner string, scope models.Scope, entries ...models.PendingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := partitionKey(owner, scope)
	part, ok := s.pending[key]
	if !ok {
		part = make(map[string]models.PendingEntry)
		s.pending[key] = part
	}
	for _, e := range entries {
		part[e.RecordID] = e
	}
	return s.persist()
}

func (s *memoryPersistence) ClearPending(_ context.Context, owner string, scope models.Scope, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	part := s.pending[partitionKey(owner, scope)]
	for _, id := range ids {
		delete(part, id)
	}
	return s.persist()
}

func (s *memoryPersistence) GetMetadata(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.metadata[key]
	return v, ok, nil
}

func (s *memoryPersistence) SetMetadata(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metadata[key] = value
	return s.persist()
}

func (s *memoryPersistence) Close() error {
	return nil
}

func (s *memoryPersistence) load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	var st persistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local storage file: %w", err)
	}

	if st.Records != nil {
		s.records = st.Records
	}
	if st.Pending != nil {
		s.pending = st.Pending
	}
	if st.Metadata != nil {
		s.metadata = st.Metadata
	}
	return nil
}

func (s *memoryPersistence) persist() error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	state := persistedState{Records: s.records, Pending: s.pending, Metadata: s.metadata}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	// write-then-rename keeps the previous snapshot intact on a crash
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}
