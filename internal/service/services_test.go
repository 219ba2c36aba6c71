package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-record-sync/internal/config"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/mock"
	"github.com/MKhiriev/go-record-sync/internal/store"
	"github.com/MKhiriev/go-record-sync/models"
)

func TestServices_FullPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStoreClient(ctrl)
	p, err := store.NewMemoryPersistence("")
	require.NoError(t, err)

	articles := models.RecordQuery{RecordType: "Article"}
	s := NewServices(p, remote, config.ClientApp{DefaultZoneName: "inbox"}, []models.RecordQuery{articles}, logger.Nop())
	defer s.Close()

	ctx := context.Background()
	sess := models.NewSession()
	inbox := models.ZoneID{Name: "inbox", Owner: "u1"}

	remote.EXPECT().CheckAvailability(gomock.Any()).Return(models.AccountAvailable, nil)
	remote.EXPECT().CurrentUserIdentity(gomock.Any()).Return("u1", nil)
	remote.EXPECT().FetchRecord(gomock.Any(), "u1").Return(models.RecordData{ID: "u1", Type: "User"}, nil)
	remote.EXPECT().QueryRecords(gomock.Any(), articles, "").Return(models.QueryPage{
		Records: []models.RecordData{{ID: "a1", Type: "Article"}},
	}, nil)
	remote.EXPECT().PullDatabaseChanges(gomock.Any(), models.ScopePrivate, "").Return(models.DatabaseChanges{NewToken: "p1"}, nil)
	remote.EXPECT().PullDatabaseChanges(gomock.Any(), models.ScopeShared, "").Return(models.DatabaseChanges{NewToken: "s1"}, nil)
	remote.EXPECT().PushChanges(gomock.Any(), models.ScopePrivate, gomock.Len(1), gomock.Nil()).
		DoAndReturn(func(_ context.Context, _ models.Scope, toSave []models.RecordData, _ []string) (models.PushResult, error) {
			assert.Equal(t, &inbox, toSave[0].Zone)
			return models.PushResult{SavedIDs: []string{toSave[0].ID}}, nil
		})

	// offline first: the note is queued before any user is known remotely
	sess.SetCurrentUser("u1")
	note := models.NewRecord("Note")
	require.NoError(t, s.Local.AddRecord(ctx, sess, models.ScopePrivate, note))
	sess.Clear()

	summary := s.Sync.Synchronize(ctx, sess)
	require.NoError(t, summary.Err())
	assert.Equal(t, models.SyncSuccess, summary.Result)

	private, ok := summary.Scope(models.ScopePrivate)
	require.True(t, ok)
	assert.Equal(t, []string{note.ID}, private.Push.ChangedRecordIDs)

	public, ok := summary.Scope(models.ScopePublic)
	require.True(t, ok)
	assert.Equal(t, []string{"a1"}, public.Pull.ChangedRecordIDs)

	for scope, want := range map[models.Scope]string{models.ScopePrivate: "p1", models.ScopeShared: "s1"} {
		token, _, err := p.GetMetadata(ctx, changeTokenKey("u1", scope))
		require.NoError(t, err)
		assert.Equal(t, want, token)
	}

	batch, err := s.Local.PendingChanges(ctx, sess, models.ScopePrivate)
	require.NoError(t, err)
	assert.Empty(t, batch.Save)
}
