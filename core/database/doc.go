// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either an embedded SQLite database (pure Go driver, the
// default, used by tests with Name ":memory:") or a MySQL server, based on the
// application's configuration.
//
// # Connect
//
// Connect opens the database, applies pool settings per driver and pings it.
// Connections are opened with TranslateError so unique constraint violations
// surface as gorm.ErrDuplicatedKey; IsDuplicateKey also recognizes raw driver
// messages.
//
// # Schema Inspection
//
// GetTableColumns and HasIndex back the integrity feature, which compares the
// live schema against the inventory models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "equipment")
package database
