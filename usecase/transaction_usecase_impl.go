package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"support-desk-api/config/logger"
	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/entity"
	"support-desk-api/enum"
	"support-desk-api/event"
	"support-desk-api/exception"
	"support-desk-api/export"
	"support-desk-api/repository"
	"support-desk-api/security"
)

type TransactionUsecaseImpl struct {
	*repository.TransactionRepository
	*repository.ChatRepository
	*validator.Validate
	*gorm.DB
	Log      *logger.AppLogger
	Notifier EventNotifier
}

func NewTransactionUsecase(transactionRepository *repository.TransactionRepository, chatRepository *repository.ChatRepository, validate *validator.Validate, DB *gorm.DB, log *logger.AppLogger, notifier EventNotifier) *TransactionUsecaseImpl {
	return &TransactionUsecaseImpl{
		TransactionRepository: transactionRepository,
		ChatRepository:        chatRepository,
		Validate:              validate,
		DB:                    DB,
		Log:                   log,
		Notifier:              notifier,
	}
}

func (uc *TransactionUsecaseImpl) CreateCardTransaction(ctx context.Context, caller *entity.User, request *req.CreateCardTransactionRequest) (res.TransactionResponse, error) {
	if err := security.RequireRole(caller, enum.RoleAgent); err != nil {
		return res.TransactionResponse{}, err
	}
	if err := uc.Validate.Struct(request); err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Msg("invalid card transaction request")
		return res.TransactionResponse{}, err
	}

	transaction := newTransaction(&request.TransactionRequest, enum.TransactionCard)
	transaction.CardType = optional(request.CardType)
	transaction.CardNumber = optional(request.CardNumber)
	transaction.ExchangeRate = request.ExchangeRate

	return uc.create(ctx, caller, transaction)
}

func (uc *TransactionUsecaseImpl) CreateCryptoTransaction(ctx context.Context, caller *entity.User, request *req.CreateCryptoTransactionRequest) (res.TransactionResponse, error) {
	if err := security.RequireRole(caller, enum.RoleAgent); err != nil {
		return res.TransactionResponse{}, err
	}
	if err := uc.Validate.Struct(request); err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Msg("invalid crypto transaction request")
		return res.TransactionResponse{}, err
	}

	transaction := newTransaction(&request.TransactionRequest, enum.TransactionCrypto)
	transaction.ExchangeRate = request.ExchangeRate
	transaction.CryptoAmount = request.CryptoAmount
	transaction.FromAddress = optional(request.FromAddress)
	transaction.ToAddress = optional(request.ToAddress)

	return uc.create(ctx, caller, transaction)
}

func newTransaction(request *req.TransactionRequest, kind enum.TransactionType) *entity.Transaction {
	return &entity.Transaction{
		DepartmentID:    request.DepartmentID,
		CategoryID:      request.CategoryID,
		SubCategoryID:   request.SubCategoryID,
		CountryID:       request.CountryID,
		ChatID:          request.ChatID,
		TransactionType: kind,
		Amount:          request.Amount,
		AmountNaira:     request.AmountNaira,
		Status:          enum.TransactionPending,
	}
}

// create resolves the agent and customer of the referenced chat and writes the
// transaction.
func (uc *TransactionUsecaseImpl) create(ctx context.Context, caller *entity.User, transaction *entity.Transaction) (res.TransactionResponse, error) {
	chat, err := uc.ChatRepository.FindPendingChatForParticipant(ctx, uc.DB, transaction.ChatID, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res.TransactionResponse{}, exception.NotFound("Chat not found").Wrap(err)
		}
		uc.Log.Http.Error.Error().Err(err).Uint("chatId", transaction.ChatID).Msg("failed to load chat")
		return res.TransactionResponse{}, exception.Internal("Internal Server Error").Wrap(err)
	}
	if len(chat.Participants) == 0 {
		return res.TransactionResponse{}, exception.NotFound("Chat not found")
	}

	sides, err := classifyParticipants(chat.Participants)
	if err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Uint("chatId", chat.ID).Msg("cannot resolve transaction parties")
		return res.TransactionResponse{}, err
	}
	transaction.AgentID = sides.agentID
	transaction.CustomerID = sides.customerID

	if err := uc.TransactionRepository.Save(ctx, uc.DB, transaction); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("chatId", chat.ID).Msg("failed to create transaction")
		return res.TransactionResponse{}, exception.BadRequest("Transaction not created").Wrap(err)
	}

	response := toTransactionResponse(transaction)
	uc.Log.Http.Info.Info().
		Uint("transactionId", transaction.ID).
		Str("type", string(transaction.TransactionType)).
		Msg("transaction created")
	uc.Notifier.Notify(ctx, event.TransactionCreated, response, sides.agentUserID, sides.customerID)
	return response, nil
}

type transactionParties struct {
	agentID     uint
	agentUserID uint
	customerID  uint
}

// classifyParticipants splits chat participants into the agent side (users with
// an agent profile) and the customer side (everyone else). Each side must hold
// exactly one user.
func classifyParticipants(participants []entity.ChatParticipant) (transactionParties, error) {
	var parties transactionParties
	agents, customers := 0, 0
	for _, participant := range participants {
		if participant.User.Agent != nil {
			agents++
			parties.agentID = participant.User.Agent.ID
			parties.agentUserID = participant.User.ID
		} else {
			customers++
			parties.customerID = participant.User.ID
		}
	}
	if agents != 1 || customers != 1 {
		return transactionParties{}, exception.Conflict("Chat participants are ambiguous").WithDetails(map[string]int{
			"agents":    agents,
			"customers": customers,
		})
	}
	return parties, nil
}

func (uc *TransactionUsecaseImpl) GetTransactions(ctx context.Context, caller *entity.User, filter req.TransactionFilter) ([]entity.Transaction, error) {
	if err := security.RequireRole(caller, enum.RoleAdmin); err != nil {
		return nil, err
	}
	if err := uc.Validate.Struct(filter); err != nil {
		return nil, err
	}

	transactions, err := uc.TransactionRepository.FindAll(ctx, uc.DB, filter)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to list transactions")
		return nil, exception.Internal("Failed to fetch transactions").Wrap(err)
	}
	return transactions, nil
}

func (uc *TransactionUsecaseImpl) ExportTransactions(ctx context.Context, caller *entity.User, filter req.TransactionFilter) ([]byte, error) {
	transactions, err := uc.GetTransactions(ctx, caller, filter)
	if err != nil {
		return nil, err
	}

	workbook, err := export.TransactionsWorkbook(transactions)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to render transactions workbook")
		return nil, exception.Internal("Failed to export transactions").Wrap(err)
	}
	return workbook, nil
}
