package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/database"
	"portfoliotracker/src/model"
)

// TransactionRepository handles the immutable fill ledger.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository() *TransactionRepository {
	logger.WithField("component", "TransactionRepository").
		Info("Creating new TransactionRepository with MainDB")

	return &TransactionRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *TransactionRepository) WithDB(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction. The given record is updated with the
// generated ID and timestamps.
func (r *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	if err := model.Validate(tx); err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":       "TransactionRepository",
		"op":         "Create",
		"holding_id": tx.HoldingID,
		"type":       tx.TransactionType,
		"qty":        tx.Quantity,
	}).Debug("Creating new transaction")

	err := r.db.WithContext(ctx).Create(tx).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TransactionRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create transaction")

		return err
	}

	return nil
}

// FindByID returns (nil, nil) if the transaction is not found.
func (r *TransactionRepository) FindByID(ctx context.Context, id uint) (*model.Transaction, error) {
	var tx model.Transaction
	err := r.db.WithContext(ctx).First(&tx, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

// TransactionSearchOptions narrows Search results. HoldingID is mandatory;
// nil pointer filters are skipped.
type TransactionSearchOptions struct {
	HoldingID       uint
	TransactionType *string
	After           *time.Time
	Before          *time.Time
	Limit           int
	Offset          int
}

// Search resolves the holding -> transactions back-reference with optional
// filters, newest first.
func (r *TransactionRepository) Search(
	ctx context.Context,
	opts TransactionSearchOptions,
) ([]model.Transaction, error) {

	query := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("holding_id = ?", opts.HoldingID)

	if opts.TransactionType != nil {
		query = query.Where("transaction_type = ?", *opts.TransactionType)
	}
	if opts.After != nil {
		query = query.Where("transaction_date >= ?", *opts.After)
	}
	if opts.Before != nil {
		query = query.Where("transaction_date <= ?", *opts.Before)
	}

	query = query.Order("transaction_date DESC, id DESC")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var txs []model.Transaction
	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
