package checks

import (
	"fmt"

	"pricing-modeller/core/database"
	"pricing-modeller/feature/submission"

	"gorm.io/gorm"
)

// ServerReport strictly types the result of a database schema check.
type ServerReport struct {
	Driver         string   `json:"driver"`
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}

// CheckServerIntegrity verifies that the submissions table has every column
// the submission model writes.
func CheckServerIntegrity(db *gorm.DB) (*ServerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ServerReport{
		Driver:         db.Dialector.Name(),
		Table:          submission.TableName,
		Matched:        true,
		MissingColumns: []string{},
		Errors:         []string{},
	}

	missing, err := database.MissingColumns(db, submission.TableName, submission.Columns)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", submission.TableName, err))
		report.Matched = false
		return report, nil
	}
	if len(missing) > 0 {
		report.MissingColumns = missing
		report.Matched = false
	}
	return report, nil
}
