package http

import (
	"github.com/MKhiriev/go-record-sync/models"
)

// The summary types keep their errors out of JSON; views carry them as text.

type directionalView struct {
	models.DirectionalSyncSummary
	Errors []string `json:"errors,omitempty"`
}

type zonePullView struct {
	Result        models.SyncResult `json:"result"`
	ZoneDeletions directionalView   `json:"zone_deletions"`
	ZoneChanges   directionalView   `json:"zone_changes"`
	DeletedZones  []models.ZoneID   `json:"deleted_zones,omitempty"`
	ChangedZones  []models.ZoneID   `json:"changed_zones,omitempty"`
	Errors        []string          `json:"errors,omitempty"`
}

type scopeView struct {
	Scope    models.Scope      `json:"scope"`
	Result   models.SyncResult `json:"result"`
	Pull     directionalView   `json:"pull"`
	ZonePull *zonePullView     `json:"zone_pull,omitempty"`
	Push     directionalView   `json:"push"`
	Errors   []string          `json:"errors,omitempty"`
}

type syncView struct {
	Result         models.SyncResult `json:"result"`
	PreflightError string            `json:"preflight_error,omitempty"`
	Scopes         []scopeView       `json:"scopes"`
	Errors         []string          `json:"errors,omitempty"`
}

type stateView struct {
	Phase string `json:"phase"`
	Scope string `json:"scope,omitempty"`
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func newDirectionalView(s models.DirectionalSyncSummary) directionalView {
	return directionalView{DirectionalSyncSummary: s, Errors: errorStrings(s.Errors)}
}

func newScopeView(s models.ScopedSyncSummary) scopeView {
	v := scopeView{
		Scope:  s.Scope,
		Result: s.Result,
		Pull:   newDirectionalView(s.Pull),
		Push:   newDirectionalView(s.Push),
		Errors: errorStrings(s.Errors),
	}
	if z := s.ZonePull; z != nil {
		v.ZonePull = &zonePullView{
			Result:        z.Result,
			ZoneDeletions: newDirectionalView(z.ZoneDeletions),
			ZoneChanges:   newDirectionalView(z.ZoneChanges),
			DeletedZones:  z.DeletedZones,
			ChangedZones:  z.ChangedZones,
			Errors:        errorStrings(z.Errors),
		}
	}
	return v
}

func newSyncView(s models.SyncSummary) syncView {
	v := syncView{
		Result: s.Result,
		Scopes: make([]scopeView, 0, len(s.Scopes)),
		Errors: errorStrings(s.Errors),
	}
	if s.PreflightError != nil {
		v.PreflightError = s.PreflightError.Error()
	}
	for _, sc := range s.Scopes {
		v.Scopes = append(v.Scopes, newScopeView(sc))
	}
	return v
}
