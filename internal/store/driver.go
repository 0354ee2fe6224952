package store

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// sqliteUnicode is sqlite3 with lower() folding the whole of unicode, like postgres does,
// instead of ascii only.
const sqliteUnicode = "sqlite3_unicode"

func init() {
	sql.Register(sqliteUnicode, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
	sqlx.BindDriver(sqliteUnicode, sqlx.QUESTION)
}

func driverName(driver string) string {
	if driver == "sqlite3" {
		return sqliteUnicode
	}
	return driver
}
