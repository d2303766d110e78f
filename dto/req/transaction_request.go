package req

import "github.com/shopspring/decimal"

// TransactionRequest holds the fields shared by the card and crypto variants.
type TransactionRequest struct {
	DepartmentID  uint                `json:"departmentId" validate:"required"`
	CategoryID    uint                `json:"categoryId" validate:"required"`
	SubCategoryID uint                `json:"subCategoryId" validate:"required"`
	CountryID     uint                `json:"countryId" validate:"required"`
	ChatID        uint                `json:"chatId" validate:"required"`
	Amount        decimal.Decimal     `json:"amount" validate:"required,gt=0"`
	AmountNaira   decimal.NullDecimal `json:"amountNaira" validate:"omitempty,gt=0"`
}

type CreateCardTransactionRequest struct {
	TransactionRequest
	CardType     string              `json:"cardType" validate:"omitempty,max=50"`
	CardNumber   string              `json:"cardNumber" validate:"omitempty,max=50"`
	ExchangeRate decimal.NullDecimal `json:"exchangeRate" validate:"omitempty,gt=0"`
}

type CreateCryptoTransactionRequest struct {
	TransactionRequest
	ExchangeRate decimal.NullDecimal `json:"exchangeRate" validate:"required,gt=0"`
	CryptoAmount decimal.NullDecimal `json:"cryptoAmount" validate:"omitempty,gt=0"`
	FromAddress  string              `json:"fromAddress" validate:"omitempty,max=255"`
	ToAddress    string              `json:"toAddress" validate:"omitempty,max=255"`
}

type TransactionFilter struct {
	Status  string `query:"status" validate:"omitempty,oneof=pending approved declined"`
	Type    string `query:"type" validate:"omitempty,oneof=card crypto"`
	AgentID uint   `query:"agentId"`
}
