package repository

import (
	"context"

	"gorm.io/gorm"
	"support-desk-api/dto/req"
	"support-desk-api/entity"
)

type TransactionRepository struct {
	Repository[entity.Transaction]
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// FindAll lists transactions newest first, narrowed by the non-empty fields of
// filter.
func (repository TransactionRepository) FindAll(ctx context.Context, db *gorm.DB, filter req.TransactionFilter) ([]entity.Transaction, error) {
	query := db.WithContext(ctx).Model(&entity.Transaction{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("transaction_type = ?", filter.Type)
	}
	if filter.AgentID != 0 {
		query = query.Where("agent_id = ?", filter.AgentID)
	}

	var transactions []entity.Transaction
	err := query.
		Preload("Customer").
		Preload("Department").
		Preload("Category").
		Preload("SubCategory").
		Preload("Country").
		Order("id DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
