// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DeleteBehavior says what happens to the owner of a relationship when the
// relationship's target is deleted.
type DeleteBehavior uint8

const (
	// DeleteNullify clears the relationship when the target goes away.
	DeleteNullify DeleteBehavior = iota
	// DeleteCascade deletes the owner together with the target.
	DeleteCascade
)

func (b DeleteBehavior) String() string {
	if b == DeleteCascade {
		return "cascade"
	}
	return "nullify"
}

// Reference is the serializable form of a relationship: the target's
// identifier plus the delete behavior.
type Reference struct {
	Key      string         `json:"key" cbor:"1,keyasint"`
	RecordID string         `json:"record_id" cbor:"2,keyasint"`
	Behavior DeleteBehavior `json:"behavior" cbor:"3,keyasint"`
}

// Record is an identity-bearing entity with scalar properties and optional
// relationships to other records.
//
// The scope of a record is assigned once, on its first successful add. A
// record and every record it is related to, through a relationship or a
// parent/child edge, share the same scope and zone.
type Record struct {
	ID         string
	Type       string
	Zone       *ZoneID
	ShareID    string
	ChangeTag  string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Properties Properties

	scope      Scope
	references map[string]Reference
	related    map[string]*Record
	parentID   string
	parent     *Record
	children   map[string]*Record
}

// NewRecord returns an unscoped record of recordType with a fresh identifier.
func NewRecord(recordType string) *Record {
	return NewRecordWithID(NewID(), recordType)
}

// NewID returns a UUIDv7, or a random UUIDv4 when the clock source fails.
// Every identifier minted by syncd comes from here.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// NewRecordWithID returns an unscoped record with a caller-chosen identifier.
func NewRecordWithID(id, recordType string) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:         id,
		Type:       recordType,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

func (r *Record) Scope() Scope {
	return r.scope
}

// AssignScope sets the record's scope. Assigning the scope the record already
// has is a no-op; assigning a different one panics with an
// [*InvariantViolation].
func (r *Record) AssignScope(s Scope) {
	if !s.IsValid() {
		Violate(RuleUnreachable, "record %s: cannot assign scope %s", r.ID, s)
	}
	if r.scope == ScopeUnset {
		r.scope = s
		return
	}
	if r.scope != s {
		Violate(RuleScopeReassignment, "record %s already in %s scope, cannot move to %s", r.ID, r.scope, s)
	}
}

// CheckCompatible panics if other is in a different scope or zone than r.
// Unset scopes and missing zones are not compared; use [Record.CheckSameScopeAndZone]
// once both sides are placed.
func (r *Record) CheckCompatible(other *Record) {
	if r.scope != ScopeUnset && other.scope != ScopeUnset && r.scope != other.scope {
		Violate(RuleScopeMismatch, "record %s (%s) related to record %s (%s)", r.ID, r.scope, other.ID, other.scope)
	}
	if r.Zone != nil && other.Zone != nil && *r.Zone != *other.Zone {
		Violate(RuleZoneMismatch, "record %s in zone %s related to record %s in zone %s", r.ID, r.Zone, other.ID, other.Zone)
	}
}

// CheckSameScopeAndZone panics unless r and other have exactly the same scope
// and zone.
func (r *Record) CheckSameScopeAndZone(other *Record) {
	if r.scope != other.scope {
		Violate(RuleScopeMismatch, "record %s (%s) related to record %s (%s)", r.ID, r.scope, other.ID, other.scope)
	}
	if !SameZone(r.Zone, other.Zone) {
		Violate(RuleZoneMismatch, "record %s in zone %s related to record %s in zone %s",
			r.ID, zoneString(r.Zone), other.ID, zoneString(other.Zone))
	}
}

// SetRelatedRecord stores a relationship under key. A nil target clears both
// the stored reference and the cached target.
func (r *Record) SetRelatedRecord(key string, target *Record, behavior DeleteBehavior) {
	if target == nil {
		delete(r.references, key)
		delete(r.related, key)
		return
	}
	r.CheckCompatible(target)
	if r.references == nil {
		r.references = make(map[string]Reference)
	}
	if r.related == nil {
		r.related = make(map[string]*Record)
	}
	r.references[key] = Reference{Key: key, RecordID: target.ID, Behavior: behavior}
	r.related[key] = target
}

// RelatedRecord returns the resolved target of key, if any.
func (r *Record) RelatedRecord(key string) *Record {
	return r.related[key]
}

// Reference returns the stored reference for key.
func (r *Record) Reference(key string) (Reference, bool) {
	ref, ok := r.references[key]
	return ref, ok
}

// References returns all stored references ordered by key.
func (r *Record) References() []Reference {
	keys := slices.Sorted(maps.Keys(r.references))
	out := make([]Reference, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.references[k])
	}
	return out
}

// RelatedRecords returns the resolved relationship targets ordered by key.
func (r *Record) RelatedRecords() []*Record {
	keys := slices.Sorted(maps.Keys(r.related))
	out := make([]*Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.related[k])
	}
	return out
}

// UnresolvedReferences returns the references that have no cached target yet,
// typically because the record was loaded from persisted or remote data.
func (r *Record) UnresolvedReferences() []Reference {
	var out []Reference
	for _, ref := range r.References() {
		if _, ok := r.related[ref.Key]; !ok {
			out = append(out, ref)
		}
	}
	return out
}

// ResolveRelatedRecord attaches target as the cached record of an existing
// reference. It reports false when key has no reference or the reference
// points at a different identifier.
func (r *Record) ResolveRelatedRecord(key string, target *Record) bool {
	ref, ok := r.references[key]
	if !ok || target == nil || ref.RecordID != target.ID {
		return false
	}
	r.CheckCompatible(target)
	if r.related == nil {
		r.related = make(map[string]*Record)
	}
	r.related[key] = target
	return true
}

// Parent returns the resolved parent, if any.
func (r *Record) Parent() *Record {
	return r.parent
}

// ParentID returns the identifier of the parent, resolved or not.
func (r *Record) ParentID() string {
	if r.parent != nil {
		return r.parent.ID
	}
	return r.parentID
}

// SetParent makes parent the parent of r and keeps the children index of the
// old and new parents in step. A nil parent detaches r.
func (r *Record) SetParent(parent *Record) {
	if parent != nil {
		r.CheckCompatible(parent)
	}
	if r.parent != nil {
		delete(r.parent.children, r.ID)
	}
	r.parent = parent
	r.parentID = ""
	if parent == nil {
		return
	}
	r.parentID = parent.ID
	if parent.children == nil {
		parent.children = make(map[string]*Record)
	}
	parent.children[r.ID] = r
}

// ResolveParent attaches parent when it matches the stored parent identifier.
func (r *Record) ResolveParent(parent *Record) bool {
	if parent == nil || r.parent != nil || r.parentID != parent.ID {
		return false
	}
	r.SetParent(parent)
	return true
}

// Children returns the known children ordered by identifier.
func (r *Record) Children() []*Record {
	keys := slices.Sorted(maps.Keys(r.children))
	out := make([]*Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.children[k])
	}
	return out
}

// Touch updates ModifiedAt.
func (r *Record) Touch() {
	r.ModifiedAt = time.Now().UTC()
}

// Overwrite replaces the content of r with src, keeping r's identity and
// children. Resolved relationship targets are dropped and must be resolved
// again.
func (r *Record) Overwrite(src *Record) {
	if src.scope != ScopeUnset {
		r.AssignScope(src.scope)
	}
	r.Type = src.Type
	r.Zone = cloneZone(src.Zone)
	r.ShareID = src.ShareID
	r.ChangeTag = src.ChangeTag
	r.CreatedAt = src.CreatedAt
	r.ModifiedAt = src.ModifiedAt
	r.Properties = PropertiesFrom(src.Properties.Entries())
	r.references = maps.Clone(src.references)
	r.related = nil

	if newParent := src.ParentID(); newParent != r.ParentID() {
		if r.parent != nil {
			delete(r.parent.children, r.ID)
		}
		r.parent = nil
		r.parentID = newParent
	}
}

// RecordData is the serializable form of a [Record]: properties in order,
// relationships and the parent as identifiers.
type RecordData struct {
	ID            string      `json:"id"`
	Type          string      `json:"type"`
	Scope         Scope       `json:"scope"`
	Zone          *ZoneID     `json:"zone,omitempty"`
	ShareID       string      `json:"share_id,omitempty"`
	ParentID      string      `json:"parent_id,omitempty"`
	ChangeTag     string      `json:"change_tag,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	ModifiedAt    time.Time   `json:"modified_at"`
	Properties    []Property  `json:"properties,omitempty"`
	Relationships []Reference `json:"relationships,omitempty"`
}

// Data returns the serializable form of r.
func (r *Record) Data() RecordData {
	return RecordData{
		ID:            r.ID,
		Type:          r.Type,
		Scope:         r.scope,
		Zone:          cloneZone(r.Zone),
		ShareID:       r.ShareID,
		ParentID:      r.ParentID(),
		ChangeTag:     r.ChangeTag,
		CreatedAt:     r.CreatedAt,
		ModifiedAt:    r.ModifiedAt,
		Properties:    r.Properties.Entries(),
		Relationships: r.References(),
	}
}

// RecordFromData builds a record from its serialized form. Relationship and
// parent references stay unresolved until a coordinator resolves them.
func RecordFromData(d RecordData) *Record {
	r := &Record{
		ID:         d.ID,
		Type:       d.Type,
		Zone:       cloneZone(d.Zone),
		ShareID:    d.ShareID,
		ChangeTag:  d.ChangeTag,
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.ModifiedAt,
		Properties: PropertiesFrom(d.Properties),
		scope:      d.Scope,
		parentID:   d.ParentID,
	}
	if len(d.Relationships) > 0 {
		r.references = make(map[string]Reference, len(d.Relationships))
		for _, ref := range d.Relationships {
			r.references[ref.Key] = ref
		}
	}
	return r
}

func cloneZone(z *ZoneID) *ZoneID {
	if z == nil {
		return nil
	}
	c := *z
	return &c
}

func zoneString(z *ZoneID) string {
	if z == nil {
		return "<none>"
	}
	return z.String()
}
