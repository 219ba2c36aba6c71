// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/models"
)

// rows per multi-row upsert, well under the bound-parameter limit of SQLite
const saveChunkSize = 200

type sqlPersistence struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLPersistence returns a [LocalPersistence] over an open, migrated db.
func NewSQLPersistence(db *DB, log *logger.Logger) LocalPersistence {
	return &sqlPersistence{db: db, logger: log}
}

func (p *sqlPersistence) LoadRecords(ctx context.Context, owner string, scope models.Scope) ([]models.RecordData, error) {
	query, args, err := p.db.builder().
		Select(recordColumns...).
		From(tableRecords).
		Where(squirrel.Eq{"owner_id": owner, "scope": scope.String()}).
		OrderBy("record_id").
		ToSql()
	if err != nil {
		p.logger.Err(err).Str("func", "sqlPersistence.LoadRecords").Msg("error building query")
		return nil, wrap(ErrBuildingSQLQuery, err)
	}

	var out []models.RecordData
	err = p.db.withRetry(ctx, func(ctx context.Context) error {
		out = out[:0]
		rows, err := p.db.QueryContext(ctx, query, args...)
		if err != nil {
			return wrap(ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			d, err := scanRecord(rows)
			if err != nil {
				return err
			}
			out = append(out, d)
		}
		if err = rows.Err(); err != nil {
			return wrap(ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		p.logger.Err(err).Str("func", "sqlPersistence.LoadRecords").Msg("error loading records")
		return nil, err
	}
	return out, nil
}

func scanRecord(rows *sql.Rows) (models.RecordData, error) {
	var (
		d                   models.RecordData
		ownerID, scope      string
		zoneName, zoneOwner sql.NullString
		props, rels         []byte
		createdAt, modified int64
	)
	err := rows.Scan(&ownerID, &scope, &d.ID, &d.Type, &zoneName, &zoneOwner,
		&d.ShareID, &d.ParentID, &d.ChangeTag, &props, &rels, &createdAt, &modified)
	if err != nil {
		return d, wrap(ErrScanningRows, err)
	}

	if d.Scope, err = models.ParseScope(scope); err != nil {
		return d, wrap(ErrDecodingRecord, err)
	}
	d.Zone = zoneFromColumns(zoneName, zoneOwner)
	d.CreatedAt = time.UnixMilli(createdAt).UTC()
	d.ModifiedAt = time.UnixMilli(modified).UTC()
	if d.Properties, err = decodeBlob[models.Property](props); err != nil {
		return d, err
	}
	if d.Relationships, err = decodeBlob[models.Reference](rels); err != nil {
		return d, err
	}
	return d, nil
}

func (p *sqlPersistence) SaveRecords(ctx context.Context, owner string, scope models.Scope, records ...models.RecordData) error {
	if len(records) == 0 {
		return nil
	}

	var stmts []statement
	for chunk := range slices.Chunk(lastByKey(records, func(d models.RecordData) string { return d.ID }), saveChunkSize) {
		insert := p.db.builder().
			Insert(tableRecords).
			Columns(recordColumns...).
			Suffix(upsertSuffix(recordConflictTarget, recordUpsertColumns))
		for _, d := range chunk {
			props, err := encodeBlob(d.Properties)
			if err != nil {
				return err
			}
			rels, err := encodeBlob(d.Relationships)
			if err != nil {
				return err
			}
			zoneName, zoneOwner := zoneColumns(d.Zone)
			insert = insert.Values(owner, scope.String(), d.ID, d.Type, zoneName, zoneOwner,
				d.ShareID, d.ParentID, d.ChangeTag, props, rels,
				d.CreatedAt.UnixMilli(), d.ModifiedAt.UnixMilli())
		}

		query, args, err := insert.ToSql()
		if err != nil {
			p.logger.Err(err).Str("func", "sqlPersistence.SaveRecords").Msg("error building query")
			return wrap(ErrBuildingSQLQuery, err)
		}
		stmts = append(stmts, statement{query: query, args: args})
	}
	return p.exec(ctx, "sqlPersistence.SaveRecords", stmts...)
}

// lastByKey drops earlier duplicates so a single upsert never touches a row
// twice.
func lastByKey[T any](items []T, key func(T) string) []T {
	seen := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if i, ok := seen[k]; ok {
			out[i] = it
			continue
		}
		seen[k] = len(out)
		out = append(out, it)
	}
	return out
}

func (p *sqlPersistence) DeleteRecords(ctx context.Context, owner string, scope models.Scope, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := p.db.builder().
		Delete(tableRecords).
		Where(squirrel.Eq{"owner_id": owner, "scope": scope.String(), "record_id": ids}).
		ToSql()
	if err != nil {
		return wrap(ErrBuildingSQLQuery, err)
	}
	return p.exec(ctx, "sqlPersistence.DeleteRecords", statement{query: query, args: args})
}

func (p *sqlPersistence) LoadPending(ctx context.Context, owner string, scope models.Scope) ([]models.PendingEntry, error) {
	query, args, err := p.db.builder().
		Select("record_id", "kind", "zone_name", "zone_owner").
		From(tablePending).
		Where(squirrel.Eq{"owner_id": owner, "scope": scope.String()}).
		OrderBy("record_id").
		ToSql()
	if err != nil {
		return nil, wrap(ErrBuildingSQLQuery, err)
	}

	var out []models.PendingEntry
	err = p.db.withRetry(ctx, func(ctx context.Context) error {
		out = out[:0]
		rows, err := p.db.QueryContext(ctx, query, args...)
		if err != nil {
			return wrap(ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				e                   models.PendingEntry
				kind                string
				zoneName, zoneOwner sql.NullString
			)
			if err := rows.Scan(&e.RecordID, &kind, &zoneName, &zoneOwner); err != nil {
				return wrap(ErrScanningRows, err)
			}
			e.Kind = models.ParsePendingKind(kind)
			e.Zone = zoneFromColumns(zoneName, zoneOwner)
			out = append(out, e)
		}
		if err := rows.Err(); err != nil {
			return wrap(ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		p.logger.Err(err).Str("func", "sqlPersistence.LoadPending").Msg("error loading pending changes")
		return nil, err
	}
	return out, nil
}

func (p *sqlPersistence) SetPending(ctx context.Context, owner string, scope models.Scope, entries ...models.PendingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	insert := p.db.builder().
		Insert(tablePending).
		Columns(pendingColumns...).
		Suffix(upsertSuffix(pendingConflictTarget, pendingUpsertColumns))
	for _, e := range lastByKey(entries, func(e models.PendingEntry) string { return e.RecordID }) {
		zoneName, zoneOwner := zoneColumns(e.Zone)
		insert = insert.Values(owner, scope.String(), e.RecordID, e.Kind.String(), zoneName, zoneOwner)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return wrap(ErrBuildingSQLQuery, err)
	}
	return p.exec(ctx, "sqlPersistence.SetPending", statement{query: query, args: args})
}

func (p *sqlPersistence) ClearPending(ctx context.Context, owner string, scope models.Scope, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := p.db.builder().
		Delete(tablePending).
		Where(squirrel.Eq{"owner_id": owner, "scope": scope.String(), "record_id": ids}).
		ToSql()
	if err != nil {
		return wrap(ErrBuildingSQLQuery, err)
	}
	return p.exec(ctx, "sqlPersistence.ClearPending", statement{query: query, args: args})
}

func (p *sqlPersistence) GetMetadata(ctx context.Context, key string) (string, bool, error) {
	query, args, err := p.db.builder().
		Select("meta_value").
		From(tableMetadata).
		Where(squirrel.Eq{"meta_key": key}).
		ToSql()
	if err != nil {
		return "", false, wrap(ErrBuildingSQLQuery, err)
	}

	var (
		value string
		found bool
	)
	err = p.db.withRetry(ctx, func(ctx context.Context) error {
		err := p.db.QueryRowContext(ctx, query, args...).Scan(&value)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			found = false
			return nil
		case err != nil:
			return wrap(ErrExecutingQuery, err)
		}
		found = true
		return nil
	})
	if err != nil {
		p.logger.Err(err).Str("func", "sqlPersistence.GetMetadata").Str("key", key).Msg("error reading metadata")
		return "", false, err
	}
	return value, found, nil
}

func (p *sqlPersistence) SetMetadata(ctx context.Context, key, value string) error {
	query, args, err := p.db.builder().
		Insert(tableMetadata).
		Columns("meta_key", "meta_value").
		Values(key, value).
		Suffix(metadataUpsertSuffix).
		ToSql()
	if err != nil {
		return wrap(ErrBuildingSQLQuery, err)
	}
	return p.exec(ctx, "sqlPersistence.SetMetadata", statement{query: query, args: args})
}

func (p *sqlPersistence) Close() error {
	return p.db.Close()
}

type statement struct {
	query string
	args  []any
}

// exec runs the write statements in one transaction.
func (p *sqlPersistence) exec(ctx context.Context, fn string, stmts ...statement) error {
	err := p.db.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, st := range stmts {
			if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
				return wrap(ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Err(err).Str("func", fn).Msg("error executing statement")
	}
	return err
}

func zoneColumns(z *models.ZoneID) (sql.NullString, sql.NullString) {
	if z == nil {
		return sql.NullString{}, sql.NullString{}
	}
	return sql.NullString{String: z.Name, Valid: true}, sql.NullString{String: z.Owner, Valid: true}
}

func zoneFromColumns(name, owner sql.NullString) *models.ZoneID {
	if !name.Valid {
		return nil
	}
	return &models.ZoneID{Name: name.String, Owner: owner.String}
}
