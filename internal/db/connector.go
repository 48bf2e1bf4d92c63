package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"erdgen/pkg/config"
)

type Extractor interface {

	// Extract reads the catalog of an open connection into a raw schema.
	Extract(ctx context.Context, dbConn *sql.DB) (Schema, error)
}

var dialects = map[string]Extractor{}

// Register makes an Extractor available under name.
func Register(name string, e Extractor) {
	dialects[strings.ToLower(name)] = e
}

// RegisteredDialects returns the registered dialect keys (for diagnostics).
func RegisteredDialects() []string {
	keys := make([]string, 0, len(dialects))
	for k := range dialects {
		keys = append(keys, k)
	}
	return keys
}

// ConnectAndExtract connects to the database and reads its schema with the
// dialect extractor registered for driver.
func ConnectAndExtract(driver, dsn string, timeoutSec int) (Schema, error) {
	driver = config.NormalizeDriver(driver)
	extractor, ok := dialects[driver]
	if !ok {
		return Schema{}, fmt.Errorf("dialect not registered: %q (available: %v)", driver, RegisteredDialects())
	}
	dbConn, err := sql.Open(driver, dsn)
	if err != nil {
		return Schema{}, err
	}
	defer dbConn.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		return Schema{}, err
	}
	return extractor.Extract(ctx, dbConn)
}
