package migrations

import (
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// PrepareWatchListSymbolColumns normalizes schemas that previously stored
// watch list symbols as comma-separated text so that AutoMigrate can safely
// create the jsonb stock_symbols column without failing casts.
func PrepareWatchListSymbolColumns(db *gorm.DB) error {
	const table = "watch_lists"

	columnType, exists, err := lookupColumnType(db, table, "stock_symbols")
	if err != nil {
		return fmt.Errorf("inspect %s.stock_symbols: %w", table, err)
	}

	// Nothing stored yet, or already JSON-typed. AutoMigrate handles the rest.
	if !exists || !isStringy(columnType) {
		return nil
	}

	// Rewrite "AAPL,MSFT" style values into JSON arrays in place, then retype
	// the column so AutoMigrate sees the expected jsonb type.
	if err := db.Exec(fmt.Sprintf(
		`UPDATE %s SET stock_symbols = COALESCE(
			(SELECT to_json(array_agg(trim(s)))::text
			 FROM unnest(string_to_array(stock_symbols, ',')) AS s
			 WHERE trim(s) <> ''),
			'[]')
		 WHERE stock_symbols IS NOT NULL AND stock_symbols NOT LIKE '[%%'`, table)).Error; err != nil {
		return fmt.Errorf("rewrite legacy stock_symbols on %s: %w", table, err)
	}

	if err := db.Exec(fmt.Sprintf(
		"ALTER TABLE %s ALTER COLUMN stock_symbols TYPE jsonb USING stock_symbols::jsonb", table)).Error; err != nil {
		return fmt.Errorf("retype stock_symbols on %s: %w", table, err)
	}

	return nil
}

func lookupColumnType(db *gorm.DB, table, column string) (dataType string, exists bool, err error) {
	row := db.Raw(
		`SELECT data_type FROM information_schema.columns WHERE table_name = ? AND column_name = ?`,
		table,
		column,
	).Row()

	if scanErr := row.Scan(&dataType); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, scanErr
	}

	return dataType, true, nil
}

func isStringy(dataType string) bool {
	dataType = strings.ToLower(dataType)
	return strings.Contains(dataType, "char") || dataType == "text"
}
