package store

const (
	tableRecords  = "records"
	tablePending  = "pending_changes"
	tableMetadata = "sync_metadata"
)

var recordColumns = []string{
	"owner_id",
	"scope",
	"record_id",
	"record_type",
	"zone_name",
	"zone_owner",
	"share_id",
	"parent_id",
	"change_tag",
	"properties",
	"relationships",
	"created_at",
	"modified_at",
}

// columns after the primary key, overwritten on conflict
var recordUpsertColumns = recordColumns[3:]

var pendingColumns = []string{
	"owner_id",
	"scope",
	"record_id",
	"kind",
	"zone_name",
	"zone_owner",
}

var pendingUpsertColumns = pendingColumns[3:]

const (
	recordConflictTarget  = "(owner_id, scope, record_id)"
	pendingConflictTarget = "(owner_id, scope, record_id)"
	metadataUpsertSuffix  = "ON CONFLICT (meta_key) DO UPDATE SET meta_value = excluded.meta_value"
)

// upsertSuffix renders an ON CONFLICT clause understood by both SQLite and
// PostgreSQL.
func upsertSuffix(target string, columns []string) string {
	s := "ON CONFLICT " + target + " DO UPDATE SET "
	for i, c := range columns {
		if i > 0 {
			s += ", "
		}
		s += c + " = excluded." + c
	}
	return s
}
