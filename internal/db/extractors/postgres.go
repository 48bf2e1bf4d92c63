package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"erdgen/internal/db"
	"erdgen/internal/logger"
)

// pgExtractor reads the PostgreSQL catalog via information_schema and
// pg_catalog queries.
type pgExtractor struct{}

func (pgExtractor) Extract(ctx context.Context, dbConn *sql.DB) (db.Schema, error) {
	var s db.Schema

	tr, err := dbConn.QueryContext(ctx, `
        SELECT table_schema, table_name,
               obj_description((quote_ident(table_schema)||'.'||quote_ident(table_name))::regclass) AS table_comment
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema NOT IN ('pg_catalog','information_schema','pg_toast')
        ORDER BY table_schema, table_name`)
	if err != nil {
		return s, fmt.Errorf("query tables: %w", err)
	}
	defer tr.Close()

	for tr.Next() {
		var tab db.Table
		if err := tr.Scan(&tab.Schema, &tab.Name, &tab.Comment); err != nil {
			return s, fmt.Errorf("scan table row: %w", err)
		}
		s.Tables = append(s.Tables, tab)
	}

	for i := range s.Tables {
		t := &s.Tables[i]
		cr, err := dbConn.QueryContext(ctx, `
            SELECT column_name, data_type, is_nullable = 'YES'
            FROM information_schema.columns
            WHERE table_schema = $1 AND table_name = $2
            ORDER BY ordinal_position`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col db.Column
			if err := cr.Scan(&col.Name, &col.Type, &col.Nullable); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			t.Columns = append(t.Columns, col)
		}
		cr.Close()

		pkr, err := dbConn.QueryContext(ctx, `
            SELECT a.attname
            FROM pg_index i
            JOIN pg_class c ON i.indrelid = c.oid
            JOIN pg_namespace ns ON c.relnamespace = ns.oid
            JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = ANY(i.indkey)
            WHERE ns.nspname = $1 AND c.relname = $2 AND i.indisprimary`, t.Schema, t.Name)
		if err != nil {
			logger.Error("query primary key: %v", err)
			continue
		}
		for pkr.Next() {
			var pkcol string
			if err := pkr.Scan(&pkcol); err != nil {
				logger.Error("scan primary key: %v", err)
				continue
			}
			markPK(t, pkcol)
		}
		pkr.Close()
	}

	// One row per referencing column so composite constraints stay per-column.
	fkr, err := dbConn.QueryContext(ctx, `
        SELECT tc.table_name, kcu.column_name, rkcu.table_name, rkcu.column_name, tc.constraint_name
        FROM information_schema.table_constraints tc
        JOIN information_schema.key_column_usage kcu
          ON tc.constraint_name = kcu.constraint_name
         AND tc.constraint_schema = kcu.constraint_schema
        JOIN information_schema.referential_constraints rc
          ON tc.constraint_name = rc.constraint_name
         AND tc.constraint_schema = rc.constraint_schema
        JOIN information_schema.key_column_usage rkcu
          ON rc.unique_constraint_name = rkcu.constraint_name
         AND rc.unique_constraint_schema = rkcu.constraint_schema
         AND kcu.ordinal_position = rkcu.ordinal_position
        WHERE tc.constraint_type = 'FOREIGN KEY'
          AND tc.table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
        ORDER BY tc.table_name, tc.constraint_name, kcu.ordinal_position`)
	if err != nil {
		logger.Error("query foreign key: %v", err)
		return s, nil
	}
	defer fkr.Close()
	for fkr.Next() {
		var fk db.ForeignKey
		if err := fkr.Scan(&fk.FromTable, &fk.FromColumn, &fk.ToTable, &fk.ToColumn, &fk.Constraint); err != nil {
			logger.Error("scan foreign key: %v", err)
			continue
		}
		s.ForeignKeys = append(s.ForeignKeys, fk)
	}
	return s, nil
}

// markPK flags the named column of t as primary key.
func markPK(t *db.Table, column string) {
	for i := range t.Columns {
		if t.Columns[i].Name == column {
			t.Columns[i].PK = true
		}
	}
}

func init() {
	db.Register("postgres", pgExtractor{})
	db.Register("postgresql", pgExtractor{})
}
