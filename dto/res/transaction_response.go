package res

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID              uint                `json:"id"`
	TransactionType string              `json:"transactionType"`
	ChatID          uint                `json:"chatId"`
	AgentID         uint                `json:"agentId"`
	CustomerID      uint                `json:"customerId"`
	DepartmentID    uint                `json:"departmentId"`
	CategoryID      uint                `json:"categoryId"`
	SubCategoryID   uint                `json:"subCategoryId"`
	CountryID       uint                `json:"countryId"`
	CardType        *string             `json:"cardType,omitempty"`
	CardNumber      *string             `json:"cardNumber,omitempty"`
	Amount          decimal.Decimal     `json:"amount"`
	ExchangeRate    decimal.NullDecimal `json:"exchangeRate"`
	AmountNaira     decimal.NullDecimal `json:"amountNaira"`
	CryptoAmount    decimal.NullDecimal `json:"cryptoAmount"`
	FromAddress     *string             `json:"fromAddress,omitempty"`
	ToAddress       *string             `json:"toAddress,omitempty"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
}
