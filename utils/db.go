package utils

import (
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Round2 rounds a currency amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LockForUpdate adds a row lock on dialects that support it. SQLite (used by
// the test suites) serializes writers at the database level and rejects the
// FOR UPDATE syntax.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
