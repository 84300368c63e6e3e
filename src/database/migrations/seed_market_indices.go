package migrations

import (
	"fmt"

	"portfoliotracker/src/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedMarketIndices inserts the benchmark indices the dashboard expects to
// exist. Values start at zero and get refreshed by the quote connector.
func seedMarketIndices(db *gorm.DB) error {
	indices := []model.MarketIndex{
		{Symbol: "^GSPC", Name: "S&P 500"},
		{Symbol: "^DJI", Name: "Dow Jones Industrial Average"},
		{Symbol: "^IXIC", Name: "NASDAQ Composite"},
	}

	for i := range indices {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoNothing: true,
		}).Create(&indices[i]).Error; err != nil {
			return fmt.Errorf("seed index %s: %w", indices[i].Symbol, err)
		}
	}

	return nil
}

// normalizeTransactionTypes uppercases transaction_type values written before
// the BUY/SELL contract was enforced at construction.
func normalizeTransactionTypes(db *gorm.DB) error {
	if err := db.Model(&model.Transaction{}).
		Where("transaction_type <> upper(transaction_type)").
		Update("transaction_type", gorm.Expr("upper(transaction_type)")).Error; err != nil {
		return fmt.Errorf("uppercase transaction types: %w", err)
	}
	return nil
}
