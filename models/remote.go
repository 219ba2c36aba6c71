package models

// AccountStatus is the availability of the remote store for the caller.
type AccountStatus uint8

const (
	AccountAvailable AccountStatus = iota + 1
	AccountNoAccount
	AccountRestricted
	AccountIndeterminate
)

func (s AccountStatus) String() string {
	switch s {
	case AccountAvailable:
		return "available"
	case AccountNoAccount:
		return "no_account"
	case AccountRestricted:
		return "restricted"
	case AccountIndeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// ParseAccountStatus is the inverse of [AccountStatus.String]. Unknown input
// maps to AccountIndeterminate.
func ParseAccountStatus(s string) AccountStatus {
	switch s {
	case "available":
		return AccountAvailable
	case "no_account":
		return AccountNoAccount
	case "restricted":
		return AccountRestricted
	default:
		return AccountIndeterminate
	}
}

// DatabaseChanges is the database-level delta of a zoned scope since a change
// token.
type DatabaseChanges struct {
	ChangedZones []ZoneID `json:"changed_zones"`
	DeletedZones []ZoneID `json:"deleted_zones"`
	NewToken     string   `json:"new_token"`
}

// ZoneChanges is the record-level delta of a set of zones.
type ZoneChanges struct {
	ChangedRecords   []RecordData `json:"changed_records"`
	DeletedRecordIDs []string     `json:"deleted_record_ids"`
}

// PushResult lists the identifiers the remote store confirmed.
type PushResult struct {
	SavedIDs   []string `json:"saved_ids"`
	DeletedIDs []string `json:"deleted_ids"`
}

// RecordQuery describes a set of public records to pull.
type RecordQuery struct {
	RecordType string `json:"record_type" yaml:"record_type"`
	Filter     string `json:"filter,omitempty" yaml:"filter"`
}

// QueryPage is one page of a public query. An empty Cursor ends the query.
type QueryPage struct {
	Records []RecordData `json:"records"`
	Cursor  string       `json:"cursor,omitempty"`
}

// Notification is the signal that something changed remotely in Scope.
type Notification struct {
	Scope          Scope  `json:"scope"`
	SubscriptionID string `json:"subscription_id,omitempty"`
}
