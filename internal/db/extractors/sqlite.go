package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"erdgen/internal/db"
	"erdgen/internal/logger"
)

// sqliteExtractor reads the SQLite catalog via sqlite_master and pragmas.
type sqliteExtractor struct{}

func (sqliteExtractor) Extract(ctx context.Context, dbConn *sql.DB) (db.Schema, error) {
	var s db.Schema

	tr, err := dbConn.QueryContext(ctx, `
        SELECT name FROM sqlite_master
        WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
        ORDER BY name`)
	if err != nil {
		return s, fmt.Errorf("query tables: %w", err)
	}
	defer tr.Close()

	for tr.Next() {
		var tab db.Table
		if err := tr.Scan(&tab.Name); err != nil {
			return s, fmt.Errorf("scan table row: %w", err)
		}
		s.Tables = append(s.Tables, tab)
	}

	for i := range s.Tables {
		t := &s.Tables[i]
		cr, err := dbConn.QueryContext(ctx, `SELECT name, type, "notnull", pk FROM pragma_table_info(?)`, t.Name)
		if err != nil {
			return s, fmt.Errorf("query columns for %s: %w", t.Name, err)
		}
		for cr.Next() {
			var col db.Column
			var notNull, pk int
			if err := cr.Scan(&col.Name, &col.Type, &notNull, &pk); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s: %w", t.Name, err)
			}
			col.Nullable = notNull == 0
			col.PK = pk != 0
			t.Columns = append(t.Columns, col)
		}
		cr.Close()

		fkr, err := dbConn.QueryContext(ctx, `SELECT "table", "from", "to" FROM pragma_foreign_key_list(?)`, t.Name)
		if err != nil {
			logger.Error("query foreign key for %s: %v", t.Name, err)
			continue
		}
		for fkr.Next() {
			var target string
			var from, to sql.NullString
			if err := fkr.Scan(&target, &from, &to); err != nil {
				logger.Error("scan foreign key for %s: %v", t.Name, err)
				continue
			}
			if !from.Valid {
				continue
			}
			s.ForeignKeys = append(s.ForeignKeys, db.ForeignKey{
				FromTable:  t.Name,
				FromColumn: from.String,
				ToTable:    target,
				ToColumn:   to.String,
			})
		}
		fkr.Close()
	}
	return s, nil
}

func init() {
	db.Register("sqlite", sqliteExtractor{})
	db.Register("sqlite3", sqliteExtractor{})
}
