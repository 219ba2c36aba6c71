package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-record-sync/models"
)

func validPrivate() models.RecordData {
	return models.RecordData{
		ID:    "r1",
		Type:  "Note",
		Scope: models.ScopePrivate,
		Zone:  &models.ZoneID{Name: "inbox", Owner: "u1"},
		Properties: []models.Property{
			{Key: "title", Value: models.StringValue("hello")},
		},
		Relationships: []models.Reference{
			{Key: "folder", RecordID: "f1", Behavior: models.DeleteCascade},
		},
	}
}

func TestRecordDataValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *models.RecordData)
		fields  []string
		wantErr error
	}{
		{name: "valid private", mutate: func(*models.RecordData) {}},
		{name: "valid public", mutate: func(d *models.RecordData) { d.Scope = models.ScopePublic; d.Zone = nil }},
		{name: "empty id", mutate: func(d *models.RecordData) { d.ID = "" }, wantErr: ErrEmptyID},
		{name: "empty type", mutate: func(d *models.RecordData) { d.Type = "" }, wantErr: ErrEmptyType},
		{name: "unset scope", mutate: func(d *models.RecordData) { d.Scope = models.ScopeUnset }, wantErr: ErrInvalidScope},
		{name: "private without zone", mutate: func(d *models.RecordData) { d.Zone = nil }, wantErr: ErrZoneRequired},
		{name: "public with zone", mutate: func(d *models.RecordData) { d.Scope = models.ScopePublic }, wantErr: ErrZoneNotAllowed},
		{name: "public with share", mutate: func(d *models.RecordData) { d.Scope = models.ScopePublic; d.Zone = nil; d.ShareID = "s" }, wantErr: ErrZoneNotAllowed},
		{name: "zone without owner", mutate: func(d *models.RecordData) { d.Zone.Owner = "" }, wantErr: ErrInvalidZone},
		{name: "empty property key", mutate: func(d *models.RecordData) { d.Properties[0].Key = "" }, wantErr: ErrEmptyPropertyKey},
		{name: "reference without target", mutate: func(d *models.RecordData) { d.Relationships[0].RecordID = "" }, wantErr: ErrInvalidReference},
		{name: "unknown delete behavior", mutate: func(d *models.RecordData) { d.Relationships[0].Behavior = 7 }, wantErr: ErrInvalidReference},
		{
			name: "duplicate reference key",
			mutate: func(d *models.RecordData) {
				d.Relationships = append(d.Relationships, models.Reference{Key: "folder", RecordID: "f2"})
			},
			wantErr: ErrInvalidReference,
		},
		{name: "own parent", mutate: func(d *models.RecordData) { d.ParentID = d.ID }, wantErr: ErrSelfParent},
		{name: "scoped to id only", mutate: func(d *models.RecordData) { d.Zone = nil }, fields: []string{FieldID}},
		{name: "unknown field", mutate: func(*models.RecordData) {}, fields: []string{"colour"}, wantErr: ErrUnknownField},
	}

	v := NewRecordDataValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validPrivate()
			tt.mutate(&d)

			err := v.Validate(context.Background(), d, tt.fields...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordDataValidator_Pointer(t *testing.T) {
	d := validPrivate()
	assert.NoError(t, NewRecordDataValidator().Validate(context.Background(), &d))
}

func TestRecordDataValidator_Notification(t *testing.T) {
	v := NewRecordDataValidator()

	assert.NoError(t, v.Validate(context.Background(), models.Notification{Scope: models.ScopeShared}))
	assert.ErrorIs(t, v.Validate(context.Background(), &models.Notification{}), ErrInvalidScope)
}

func TestRecordDataValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewRecordDataValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
