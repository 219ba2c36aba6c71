// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

// SyncResult is the three-valued outcome of a sync step.
type SyncResult uint8

const (
	SyncSuccess SyncResult = iota
	SyncPartialFailure
	SyncTotalFailure
)

func (r SyncResult) String() string {
	switch r {
	case SyncSuccess:
		return "success"
	case SyncPartialFailure:
		return "partial failure"
	case SyncTotalFailure:
		return "total failure"
	default:
		return "unknown"
	}
}

func (r SyncResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// MergeResults reduces sub-results into one: success iff all succeeded, total
// failure iff all failed totally, partial failure otherwise. An empty input is
// a success.
func MergeResults(results ...SyncResult) SyncResult {
	if len(results) == 0 {
		return SyncSuccess
	}
	allSuccess, allTotal := true, true
	for _, r := range results {
		if r != SyncSuccess {
			allSuccess = false
		}
		if r != SyncTotalFailure {
			allTotal = false
		}
	}
	switch {
	case allSuccess:
		return SyncSuccess
	case allTotal:
		return SyncTotalFailure
	default:
		return SyncPartialFailure
	}
}

// DirectionalSyncSummary describes one direction (pull or push) of a sync.
type DirectionalSyncSummary struct {
	Result           SyncResult `json:"result"`
	ChangedRecordIDs []string   `json:"changed_record_ids,omitempty"`
	DeletedRecordIDs []string   `json:"deleted_record_ids,omitempty"`
	Errors           []error    `json:"-"`
}

// Err joins the summary errors.
func (s DirectionalSyncSummary) Err() error {
	return errors.Join(s.Errors...)
}

// MergeDirectional combines summaries of the same direction.
func MergeDirectional(summaries ...DirectionalSyncSummary) DirectionalSyncSummary {
	var out DirectionalSyncSummary
	results := make([]SyncResult, 0, len(summaries))
	for _, s := range summaries {
		results = append(results, s.Result)
		out.ChangedRecordIDs = append(out.ChangedRecordIDs, s.ChangedRecordIDs...)
		out.DeletedRecordIDs = append(out.DeletedRecordIDs, s.DeletedRecordIDs...)
		out.Errors = append(out.Errors, s.Errors...)
	}
	out.Result = MergeResults(results...)
	return out
}

// FailedDirectional returns a total-failure summary carrying err.
func FailedDirectional(err error) DirectionalSyncSummary {
	return DirectionalSyncSummary{Result: SyncTotalFailure, Errors: []error{err}}
}

// ZoneBasedDirectionalSyncSummary is the pull summary of a zoned scope.
type ZoneBasedDirectionalSyncSummary struct {
	Result        SyncResult             `json:"result"`
	ZoneDeletions DirectionalSyncSummary `json:"zone_deletions"`
	ZoneChanges   DirectionalSyncSummary `json:"zone_changes"`
	DeletedZones  []ZoneID               `json:"deleted_zones,omitempty"`
	ChangedZones  []ZoneID               `json:"changed_zones,omitempty"`
	Errors        []error                `json:"-"`
}

func NewZoneBasedSummary(deletions, changes DirectionalSyncSummary, deletedZones, changedZones []ZoneID) ZoneBasedDirectionalSyncSummary {
	return ZoneBasedDirectionalSyncSummary{
		Result:        MergeResults(deletions.Result, changes.Result),
		ZoneDeletions: deletions,
		ZoneChanges:   changes,
		DeletedZones:  deletedZones,
		ChangedZones:  changedZones,
		Errors:        concatErrors(deletions.Errors, changes.Errors),
	}
}

// Directional flattens the zone-based summary into a single pull summary.
func (z ZoneBasedDirectionalSyncSummary) Directional() DirectionalSyncSummary {
	return DirectionalSyncSummary{
		Result:           z.Result,
		ChangedRecordIDs: z.ZoneChanges.ChangedRecordIDs,
		DeletedRecordIDs: append(append([]string(nil), z.ZoneDeletions.DeletedRecordIDs...), z.ZoneChanges.DeletedRecordIDs...),
		Errors:           z.Errors,
	}
}

// ScopedSyncSummary is the pull and push outcome of one scope.
type ScopedSyncSummary struct {
	Scope    Scope                            `json:"scope"`
	Result   SyncResult                       `json:"result"`
	Pull     DirectionalSyncSummary           `json:"pull"`
	ZonePull *ZoneBasedDirectionalSyncSummary `json:"zone_pull,omitempty"`
	Push     DirectionalSyncSummary           `json:"push"`
	Errors   []error                          `json:"-"`
}

func NewScopedSyncSummary(scope Scope, pull DirectionalSyncSummary, push DirectionalSyncSummary) ScopedSyncSummary {
	return ScopedSyncSummary{
		Scope:  scope,
		Result: MergeResults(pull.Result, push.Result),
		Pull:   pull,
		Push:   push,
		Errors: concatErrors(pull.Errors, push.Errors),
	}
}

// NewZonedScopedSyncSummary builds the summary of a zoned scope, keeping the
// zone-level pull detail.
func NewZonedScopedSyncSummary(scope Scope, pull ZoneBasedDirectionalSyncSummary, push DirectionalSyncSummary) ScopedSyncSummary {
	s := NewScopedSyncSummary(scope, pull.Directional(), push)
	s.ZonePull = &pull
	return s
}

// SyncSummary is the outcome of a full sync pass.
type SyncSummary struct {
	Result         SyncResult          `json:"result"`
	PreflightError error               `json:"-"`
	Scopes         []ScopedSyncSummary `json:"scopes,omitempty"`
	Errors         []error             `json:"-"`
}

// PreflightFailed returns the summary of a pass that stopped at preflight.
func PreflightFailed(err error) SyncSummary {
	return SyncSummary{
		Result:         SyncTotalFailure,
		PreflightError: err,
		Errors:         []error{err},
	}
}

// NewSyncSummary merges the scope summaries of a pass whose preflight
// succeeded.
func NewSyncSummary(scopes []ScopedSyncSummary) SyncSummary {
	results := make([]SyncResult, 0, len(scopes))
	var errs []error
	for _, s := range scopes {
		results = append(results, s.Result)
		errs = append(errs, s.Errors...)
	}
	return SyncSummary{
		Result: MergeResults(SyncSuccess, MergeResults(results...)),
		Scopes: scopes,
		Errors: errs,
	}
}

// Err joins the summary errors.
func (s SyncSummary) Err() error {
	return errors.Join(s.Errors...)
}

// Scope returns the summary of scope, if the pass reached it.
func (s SyncSummary) Scope(scope Scope) (ScopedSyncSummary, bool) {
	for _, sc := range s.Scopes {
		if sc.Scope == scope {
			return sc, true
		}
	}
	return ScopedSyncSummary{}, false
}

func concatErrors(lists ...[]error) []error {
	var out []error
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
