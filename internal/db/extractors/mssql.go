package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"erdgen/internal/db"
	"erdgen/internal/logger"
)

// mssqlExtractor reads the SQL Server catalog via sys.* views.
type mssqlExtractor struct{}

func (mssqlExtractor) Extract(ctx context.Context, dbConn *sql.DB) (db.Schema, error) {
	var s db.Schema

	tr, err := dbConn.QueryContext(ctx, `
        SELECT s.name, t.name, CAST(sep.value AS nvarchar(max))
        FROM sys.schemas AS s
        JOIN sys.tables AS t ON s.schema_id = t.schema_id
        LEFT JOIN sys.extended_properties AS sep
          ON t.object_id = sep.major_id AND sep.minor_id = 0 AND sep.name = 'MS_Description'
        ORDER BY s.name, t.name`)
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
            SELECT COLUMN_NAME, DATA_TYPE, CASE WHEN IS_NULLABLE = 'YES' THEN 1 ELSE 0 END
            FROM INFORMATION_SCHEMA.COLUMNS
            WHERE TABLE_SCHEMA = @schema AND TABLE_NAME = @table
            ORDER BY ORDINAL_POSITION`, sql.Named("schema", t.Schema), sql.Named("table", t.Name))
		if err != nil {
			return s, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col db.Column
			var nullable int
			if err := cr.Scan(&col.Name, &col.Type, &nullable); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			col.Nullable = nullable == 1
			t.Columns = append(t.Columns, col)
		}
		cr.Close()

		pkr, err := dbConn.QueryContext(ctx, `
            SELECT k.COLUMN_NAME
            FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS t
            JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE k
              ON t.CONSTRAINT_NAME = k.CONSTRAINT_NAME AND t.TABLE_SCHEMA = k.TABLE_SCHEMA
            WHERE t.CONSTRAINT_TYPE = 'PRIMARY KEY' AND k.TABLE_SCHEMA = @schema AND k.TABLE_NAME = @table`,
			sql.Named("schema", t.Schema), sql.Named("table", t.Name))
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

	fkr, err := dbConn.QueryContext(ctx, `
        SELECT
            OBJECT_NAME(fkc.parent_object_id),
            c.name,
            OBJECT_NAME(fkc.referenced_object_id),
            rc.name,
            fk.name
        FROM sys.foreign_keys fk
        JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
        JOIN sys.columns c ON fkc.parent_object_id = c.object_id AND fkc.parent_column_id = c.column_id
        JOIN sys.columns rc ON fkc.referenced_object_id = rc.object_id AND fkc.referenced_column_id = rc.column_id
        ORDER BY fk.name, fkc.constraint_column_id`)
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
	db.Register("sqlserver", mssqlExtractor{})
	db.Register("mssql", mssqlExtractor{})
}
