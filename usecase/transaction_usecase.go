package usecase

import (
	"context"

	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/entity"
)

type TransactionUsecase interface {
	CreateCardTransaction(ctx context.Context, caller *entity.User, request *req.CreateCardTransactionRequest) (res.TransactionResponse, error)
	CreateCryptoTransaction(ctx context.Context, caller *entity.User, request *req.CreateCryptoTransactionRequest) (res.TransactionResponse, error)
	GetTransactions(ctx context.Context, caller *entity.User, filter req.TransactionFilter) ([]entity.Transaction, error)
	ExportTransactions(ctx context.Context, caller *entity.User, filter req.TransactionFilter) ([]byte, error)
}
