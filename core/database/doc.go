// Package database handles database connections and schema inspection.
//
// It wraps GORM and builds the dialector for the configured driver: MySQL,
// PostgreSQL, or SQLite (used for local runs and tests).
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read a table's columns through the GORM
// migrator, which lets the integrity check confirm that the submissions table
// has the expected shape on every supported driver.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "chat_results", []string{"id", "created_at", "data"})
package database
