// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/models"
)

func sampleRecord(id string) models.RecordData {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	return models.RecordData{
		ID:        id,
		Type:      "Note",
		Scope:     models.ScopePrivate,
		Zone:      &models.ZoneID{Name: "default", Owner: "u1"},
		ParentID:  "folder-1",
		ChangeTag: "tag-1",
		CreatedAt: ts,
		// millisecond precision survives every backend
		ModifiedAt: ts.Add(1500 * time.Millisecond),
		Properties: []models.Property{
			{Key: "title", Value: models.StringValue("groceries")},
			{Key: "count", Value: models.IntValue(3)},
			{Key: "done", Value: models.BoolValue(false)},
			{Key: "due", Value: models.TimeValue(ts)},
			{Key: "weight", Value: models.FloatValue(1.25)},
			{Key: "blob", Value: models.BytesValue([]byte{1, 2, 3})},
		},
		Relationships: []models.Reference{
			{Key: "author", RecordID: "user-1", Behavior: models.DeleteNullify},
		},
	}
}

func assertSameRecord(t *testing.T, want, got models.RecordData) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Type, got.Type)
	assert.Equal(t, want.Scope, got.Scope)
	assert.Equal(t, want.Zone, got.Zone)
	assert.Equal(t, want.ParentID, got.ParentID)
	assert.Equal(t, want.ChangeTag, got.ChangeTag)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at")
	assert.True(t, want.ModifiedAt.Equal(got.ModifiedAt), "modified_at")
	assert.Equal(t, want.Relationships, got.Relationships)
	require.Len(t, got.Properties, len(want.Properties))
	for i := range want.Properties {
		assert.Equal(t, want.Properties[i].Key, got.Properties[i].Key)
		assert.True(t, want.Properties[i].Value.Equal(got.Properties[i].Value), want.Properties[i].Key)
	}
}

// backends returns every LocalPersistence that runs without external services.
func backends(t *testing.T) map[string]LocalPersistence {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	out := make(map[string]LocalPersistence)
	for name, dsn := range map[string]string{
		"memory": "memory",
		"json":   "file://" + filepath.Join(dir, "state.json"),
		"sqlite": filepath.Join(dir, "sync.db"),
	} {
		p, err := NewLocalPersistence(ctx, dsn, logger.Nop())
		require.NoError(t, err, name)
		t.Cleanup(func() { _ = p.Close() })
		out[name] = p
	}
	return out
}

func TestLocalPersistence_Records(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a, b := sampleRecord("a"), sampleRecord("b")
			require.NoError(t, p.SaveRecords(ctx, "u1", models.ScopePrivate, b, a))

			got, err := p.LoadRecords(ctx, "u1", models.ScopePrivate)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assertSameRecord(t, a, got[0])
			assertSameRecord(t, b, got[1])

			// partitions are isolated
			other, err := p.LoadRecords(ctx, "u2", models.ScopePrivate)
			require.NoError(t, err)
			assert.Empty(t, other)
			shared, err := p.LoadRecords(ctx, "u1", models.ScopeShared)
			require.NoError(t, err)
			assert.Empty(t, shared)

			// upsert
			a.ChangeTag = "tag-2"
			a.Properties = a.Properties[:1]
			a.Relationships = nil
			require.NoError(t, p.SaveRecords(ctx, "u1", models.ScopePrivate, a))
			got, err = p.LoadRecords(ctx, "u1", models.ScopePrivate)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assertSameRecord(t, a, got[0])

			require.NoError(t, p.DeleteRecords(ctx, "u1", models.ScopePrivate, "a", "missing"))
			got, err = p.LoadRecords(ctx, "u1", models.ScopePrivate)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "b", got[0].ID)

			assert.NoError(t, p.SaveRecords(ctx, "u1", models.ScopePrivate))
			assert.NoError(t, p.DeleteRecords(ctx, "u1", models.ScopePrivate))
		})
	}
}

func TestLocalPersistence_PublicRecordWithoutZone(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			d := models.RecordData{ID: "pub", Type: "Article", Scope: models.ScopePublic, CreatedAt: time.UnixMilli(0).UTC(), ModifiedAt: time.UnixMilli(0).UTC()}
			require.NoError(t, p.SaveRecords(ctx, "", models.ScopePublic, d))

			got, err := p.LoadRecords(ctx, "", models.ScopePublic)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Nil(t, got[0].Zone)
			assert.Empty(t, got[0].Properties)
			assert.Empty(t, got[0].Relationships)
		})
	}
}

func TestLocalPersistence_PendingEntryReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	zone := &models.ZoneID{Name: "default", Owner: "u1"}
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, p.SetPending(ctx, "u1", models.ScopePrivate,
				models.PendingEntry{RecordID: "a", Kind: models.PendingSave, Zone: zone},
				models.PendingEntry{RecordID: "b", Kind: models.PendingSave},
			))
			require.NoError(t, p.SetPending(ctx, "u1", models.ScopePrivate,
				models.PendingEntry{RecordID: "a", Kind: models.PendingDelete, Zone: zone},
			))

			got, err := p.LoadPending(ctx, "u1", models.ScopePrivate)
			require.NoError(t, err)
			assert.Equal(t, []models.PendingEntry{
				{RecordID: "a", Kind: models.PendingDelete, Zone: zone},
				{RecordID: "b", Kind: models.PendingSave},
			}, got)

			require.NoError(t, p.ClearPending(ctx, "u1", models.ScopePrivate, "a"))
			got, err = p.LoadPending(ctx, "u1", models.ScopePrivate)
			require.NoError(t, err)
			assert.Equal(t, []models.PendingEntry{{RecordID: "b", Kind: models.PendingSave}}, got)
		})
	}
}

func TestLocalPersistence_Metadata(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := p.GetMetadata(ctx, "changetoken/u1/private")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, p.SetMetadata(ctx, "changetoken/u1/private", "t1"))
			require.NoError(t, p.SetMetadata(ctx, "changetoken/u1/private", "t2"))

			v, ok, err := p.GetMetadata(ctx, "changetoken/u1/private")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "t2", v)
		})
	}
}

func TestLocalPersistence_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for name, dsn := range map[string]string{
		"json":   filepath.Join(dir, "state.json"),
		"sqlite": filepath.Join(dir, "nested", "sync.db"),
	} {
		t.Run(name, func(t *testing.T) {
			p, err := NewLocalPersistence(ctx, dsn, logger.Nop())
			require.NoError(t, err)
			require.NoError(t, p.SaveRecords(ctx, "u1", models.ScopePrivate, sampleRecord("a")))
			require.NoError(t, p.SetPending(ctx, "u1", models.ScopePrivate, models.PendingEntry{RecordID: "a", Kind: models.PendingSave}))
			require.NoError(t, p.SetMetadata(ctx, "k", "v"))
			require.NoError(t, p.Close())

			reopened, err := NewLocalPersistence(ctx, dsn, logger.Nop())
			require.NoError(t, err)
			defer reopened.Close()

			records, err := reopened.LoadRecords(ctx, "u1", models.ScopePrivate)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assertSameRecord(t, sampleRecord("a"), records[0])

			pending, err := reopened.LoadPending(ctx, "u1", models.ScopePrivate)
			require.NoError(t, err)
			assert.Len(t, pending, 1)

			v, ok, err := reopened.GetMetadata(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v", v)
		})
	}
}

func TestNewLocalPersistence_UnsupportedDSN(t *testing.T) {
	_, err := NewLocalPersistence(context.Background(), "mysql://localhost/db", logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}
