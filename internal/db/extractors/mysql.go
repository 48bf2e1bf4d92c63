package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"erdgen/internal/db"
	"erdgen/internal/logger"
)

// myExtractor reads the MySQL/MariaDB catalog via information_schema.
type myExtractor struct{}

func (myExtractor) Extract(ctx context.Context, dbConn *sql.DB) (db.Schema, error) {
	var s db.Schema

	tr, err := dbConn.QueryContext(ctx, `
        SELECT table_schema, table_name, nullif(table_comment, '')
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema NOT IN ('mysql','information_schema','performance_schema','sys')
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
            SELECT column_name, column_type, is_nullable = 'YES', column_key = 'PRI'
            FROM information_schema.columns
            WHERE table_schema = ? AND table_name = ?
            ORDER BY ordinal_position`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col db.Column
			if err := cr.Scan(&col.Name, &col.Type, &col.Nullable, &col.PK); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			t.Columns = append(t.Columns, col)
		}
		cr.Close()
	}

	fkr, err := dbConn.QueryContext(ctx, `
        SELECT table_name, column_name, referenced_table_name, referenced_column_name, constraint_name
        FROM information_schema.key_column_usage
        WHERE referenced_table_name IS NOT NULL
          AND table_schema NOT IN ('mysql','information_schema','performance_schema','sys')
        ORDER BY table_name, constraint_name, ordinal_position`)
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

func init() {
	db.Register("mysql", myExtractor{})
	db.Register("mariadb", myExtractor{})
}
