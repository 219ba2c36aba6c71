package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-record-sync/models"
)

// Field name constants used to restrict validation to a subset of the
// checks. Without fields every check runs.
const (
	FieldID            = "id"
	FieldType          = "type"
	FieldScope         = "scope"
	FieldZone          = "zone"
	FieldProperties    = "properties"
	FieldRelationships = "relationships"
	FieldParent        = "parent"
)

var allRecordFields = []string{
	FieldID,
	FieldType,
	FieldScope,
	FieldZone,
	FieldProperties,
	FieldRelationships,
	FieldParent,
}

// RecordDataValidator checks serialized records that come from outside the
// process, before they are turned into live records.
type RecordDataValidator struct {
}

func NewRecordDataValidator() Validator {
	return &RecordDataValidator{}
}

func (v *RecordDataValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RecordData:
		return v.validateRecordData(ctx, value, fields...)
	case *models.RecordData:
		return v.validateRecordData(ctx, *value, fields...)
	case models.Notification:
		return v.validateNotification(value)
	case *models.Notification:
		return v.validateNotification(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *RecordDataValidator) validateRecordData(_ context.Context, d models.RecordData, fields ...string) error {
	if len(fields) == 0 {
		fields = allRecordFields
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldID:
			if d.ID == "" {
				err = ErrEmptyID
			}
		case FieldType:
			if d.Type == "" {
				err = ErrEmptyType
			}
		case FieldScope:
			if !d.Scope.IsValid() {
				err = ErrInvalidScope
			}
		case FieldZone:
			err = validateZone(d)
		case FieldProperties:
			for _, p := range d.Properties {
				if p.Key == "" {
					err = ErrEmptyPropertyKey
					break
				}
			}
		case FieldRelationships:
			err = validateReferences(d.Relationships)
		case FieldParent:
			if d.ParentID != "" && d.ParentID == d.ID {
				err = ErrSelfParent
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return fmt.Errorf("record %q: %w", d.ID, err)
		}
	}

	return nil
}

func validateZone(d models.RecordData) error {
	switch d.Scope {
	case models.ScopePublic:
		if d.Zone != nil || d.ShareID != "" {
			return ErrZoneNotAllowed
		}
	case models.ScopePrivate, models.ScopeShared:
		if d.Zone == nil {
			return ErrZoneRequired
		}
		if d.Zone.Name == "" || d.Zone.Owner == "" {
			return ErrInvalidZone
		}
	}
	return nil
}

func validateReferences(refs []models.Reference) error {
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if ref.Key == "" || ref.RecordID == "" {
			return ErrInvalidReference
		}
		if ref.Behavior != models.DeleteNullify && ref.Behavior != models.DeleteCascade {
			return fmt.Errorf("%w: behavior of %q", ErrInvalidReference, ref.Key)
		}
		if _, dup := seen[ref.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidReference, ref.Key)
		}
		seen[ref.Key] = struct{}{}
	}
	return nil
}

func (v *RecordDataValidator) validateNotification(n models.Notification) error {
	if !n.Scope.IsValid() {
		return ErrInvalidScope
	}
	return nil
}
