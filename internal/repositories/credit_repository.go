package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tripwise/internal/models/db_models"
)

var errBalanceTooLow = errors.New("balance below requested amount")

type CreditRepository interface {
	// GetOrCreate inserts the account with startingCredits unless it already exists.
	GetOrCreate(ctx context.Context, ownerID string, startingCredits int) (*db_models.CreditAccount, error)
	// Deduct reports false without touching the balance when it is below amount.
	Deduct(ctx context.Context, ownerID string, amount int, reason db_models.CreditReason) (bool, error)
	// Add reports false when the account does not exist.
	Add(ctx context.Context, ownerID string, amount int, reason db_models.CreditReason) (bool, error)
	ListTransactions(ctx context.Context, ownerID string, limit int) ([]db_models.CreditTransaction, error)
}

type creditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) GetOrCreate(ctx context.Context, ownerID string, startingCredits int) (*db_models.CreditAccount, error) {
	var account db_models.CreditAccount

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := db_models.CreditAccount{OwnerID: ownerID, Credits: startingCredits}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoNothing: true,
		}).Create(&candidate)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 && startingCredits > 0 {
			grant := db_models.CreditTransaction{
				OwnerID:      ownerID,
				Delta:        startingCredits,
				Reason:       db_models.CreditReasonGrant,
				BalanceAfter: startingCredits,
			}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}

		return tx.First(&account, "owner_id = ?", ownerID).Error
	})
	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *creditRepository) Deduct(ctx context.Context, ownerID string, amount int, reason db_models.CreditReason) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Single conditional statement: two concurrent debits can never both pass the guard.
		res := tx.Model(&db_models.CreditAccount{}).
			Where("owner_id = ? AND credits >= ?", ownerID, amount).
			UpdateColumn("credits", gorm.Expr("credits - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errBalanceTooLow
		}
		return r.journal(tx, ownerID, -amount, reason)
	})

	if errors.Is(err, errBalanceTooLow) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *creditRepository) Add(ctx context.Context, ownerID string, amount int, reason db_models.CreditReason) (bool, error) {
	var updated bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.CreditAccount{}).
			Where("owner_id = ?", ownerID).
			UpdateColumn("credits", gorm.Expr("credits + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		updated = true
		return r.journal(tx, ownerID, amount, reason)
	})
	if err != nil {
		return false, err
	}

	return updated, nil
}

func (r *creditRepository) ListTransactions(ctx context.Context, ownerID string, limit int) ([]db_models.CreditTransaction, error) {
	var rows []db_models.CreditTransaction
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *creditRepository) journal(tx *gorm.DB, ownerID string, delta int, reason db_models.CreditReason) error {
	var account db_models.CreditAccount
	if err := tx.Select("credits").First(&account, "owner_id = ?", ownerID).Error; err != nil {
		return err
	}
	return tx.Create(&db_models.CreditTransaction{
		OwnerID:      ownerID,
		Delta:        delta,
		Reason:       reason,
		BalanceAfter: account.Credits,
	}).Error
}
