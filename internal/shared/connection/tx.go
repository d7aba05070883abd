package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// GormTx returns a gorm handle whose statements run on tx. The services own
// the *sql.Tx lifecycle (BeginTx / Commit / Rollback); repositories only bind
// to it. A nil tx returns db unchanged.
func GormTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	// Context forces gorm to clone the statement so the base handle keeps its pool.
	bound := db.Session(&gorm.Session{Context: context.Background(), NewDB: true, SkipDefaultTransaction: true})
	bound.Statement.ConnPool = tx
	return bound
}
