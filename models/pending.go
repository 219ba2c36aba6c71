package models

// PendingKind distinguishes the two pending-push sets of a scope.
type PendingKind uint8

const (
	PendingSave PendingKind = iota + 1
	PendingDelete
)

func (k PendingKind) String() string {
	switch k {
	case PendingSave:
		return "save"
	case PendingDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ParsePendingKind is the inverse of [PendingKind.String]. Unknown input
// yields zero.
func ParsePendingKind(s string) PendingKind {
	switch s {
	case "save":
		return PendingSave
	case "delete":
		return PendingDelete
	default:
		return 0
	}
}

// PendingEntry is a persisted membership of one record in a pending-push set.
// Zone is kept so that a pending deletion can be routed to its zone after the
// record itself has left the cache.
type PendingEntry struct {
	RecordID string      `json:"record_id"`
	Kind     PendingKind `json:"kind"`
	Zone     *ZoneID     `json:"zone,omitempty"`
}
