package entity

import (
	"github.com/shopspring/decimal"
	"support-desk-api/enum"
)

type Transaction struct {
	BaseEntity
	DepartmentID    uint                   `json:"departmentId" gorm:"index;not null"`
	CategoryID      uint                   `json:"categoryId" gorm:"index;not null"`
	SubCategoryID   uint                   `json:"subCategoryId" gorm:"index;not null"`
	CountryID       uint                   `json:"countryId" gorm:"index;not null"`
	ChatID          uint                   `json:"chatId" gorm:"index;not null"`
	AgentID         uint                   `json:"agentId" gorm:"index;not null"`
	CustomerID      uint                   `json:"customerId" gorm:"index;not null"`
	TransactionType enum.TransactionType   `json:"transactionType" gorm:"type:varchar(10);not null"`
	CardType        *string                `json:"cardType" gorm:"type:varchar(50)"`
	CardNumber      *string                `json:"cardNumber" gorm:"type:varchar(50)"`
	Amount          decimal.Decimal        `json:"amount" gorm:"type:numeric(18,2);not null"`
	ExchangeRate    decimal.NullDecimal    `json:"exchangeRate" gorm:"type:numeric(18,4)"`
	AmountNaira     decimal.NullDecimal    `json:"amountNaira" gorm:"type:numeric(18,2)"`
	CryptoAmount    decimal.NullDecimal    `json:"cryptoAmount" gorm:"type:numeric(28,8)"`
	FromAddress     *string                `json:"fromAddress" gorm:"type:varchar(255)"`
	ToAddress       *string                `json:"toAddress" gorm:"type:varchar(255)"`
	Status          enum.TransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`

	Agent       *Agent       `json:"agent,omitempty" gorm:"foreignKey:AgentID;references:ID"`
	Customer    *User        `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:ID"`
	Department  *Department  `json:"department,omitempty" gorm:"foreignKey:DepartmentID;references:ID"`
	Category    *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	SubCategory *SubCategory `json:"subCategory,omitempty" gorm:"foreignKey:SubCategoryID;references:ID"`
	Country     *Country     `json:"country,omitempty" gorm:"foreignKey:CountryID;references:ID"`
}
