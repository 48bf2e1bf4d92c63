//go:build oracle
// +build oracle

package extractors

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/godror/godror"

	"erdgen/internal/db"
	"erdgen/internal/logger"
)

// oracleExtractor reads the Oracle catalog via the all_* views. Built only
// with the oracle tag because godror needs a local client library.
type oracleExtractor struct{}

func (oracleExtractor) Extract(ctx context.Context, dbConn *sql.DB) (db.Schema, error) {
	var s db.Schema

	tr, err := dbConn.QueryContext(ctx, `
        SELECT ausr.username, atab.table_name, acom.comments
        FROM all_users ausr
        JOIN all_tables atab ON ausr.username = atab.owner
        LEFT JOIN all_tab_comments acom
          ON acom.owner = atab.owner AND acom.table_name = atab.table_name
        WHERE ausr.oracle_maintained = 'N'
        ORDER BY ausr.username, atab.table_name`)
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
            SELECT column_name, data_type, nullable
            FROM all_tab_columns
            WHERE owner = :1 AND table_name = :2
            ORDER BY column_id`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col db.Column
			var nullable string
			if err := cr.Scan(&col.Name, &col.Type, &nullable); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			col.Nullable = nullable == "Y"
			t.Columns = append(t.Columns, col)
		}
		cr.Close()

		pkr, err := dbConn.QueryContext(ctx, `
            SELECT acc.column_name
            FROM all_cons_columns acc
            JOIN all_constraints ac ON acc.owner = ac.owner AND acc.constraint_name = ac.constraint_name
            WHERE ac.constraint_type = 'P' AND acc.owner = :1 AND acc.table_name = :2`, t.Schema, t.Name)
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
        SELECT a.table_name, acc.column_name, rcc.table_name, rcc.column_name, a.constraint_name
        FROM all_users ausr
        JOIN all_constraints a ON ausr.username = a.owner
        JOIN all_cons_columns acc
          ON a.owner = acc.owner AND a.constraint_name = acc.constraint_name
        JOIN all_cons_columns rcc
          ON a.r_owner = rcc.owner AND a.r_constraint_name = rcc.constraint_name
         AND nvl(acc.position, 0) = nvl(rcc.position, 0)
        WHERE a.constraint_type = 'R' AND ausr.oracle_maintained = 'N'
        ORDER BY a.table_name, a.constraint_name, acc.position`)
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
	db.Register("godror", oracleExtractor{})
	db.Register("oracle", oracleExtractor{})
}
