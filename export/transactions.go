package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"support-desk-api/entity"
)

const transactionsSheet = "Transactions"

var transactionHeaders = []string{
	"ID", "Type", "Status", "Chat ID", "Agent ID", "Customer ID", "Customer",
	"Department", "Category", "Sub-category", "Country", "Card Type", "Card Number",
	"Amount", "Exchange Rate", "Amount (NGN)", "Crypto Amount", "From Address",
	"To Address", "Created At",
}

// TransactionsWorkbook renders transactions as a single-sheet xlsx file.
func TransactionsWorkbook(transactions []entity.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(transactionsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, header := range transactionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, transaction := range transactions {
		row := i + 2
		values := []any{
			transaction.ID,
			string(transaction.TransactionType),
			string(transaction.Status),
			transaction.ChatID,
			transaction.AgentID,
			transaction.CustomerID,
			customerName(transaction.Customer),
			transaction.Department.GetTitle(),
			transaction.Category.GetTitle(),
			transaction.SubCategory.GetTitle(),
			transaction.Country.GetTitle(),
			deref(transaction.CardType),
			deref(transaction.CardNumber),
			transaction.Amount.InexactFloat64(),
			nullable(transaction.ExchangeRate),
			nullable(transaction.AmountNaira),
			nullable(transaction.CryptoAmount),
			deref(transaction.FromAddress),
			deref(transaction.ToAddress),
			transaction.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(transactionsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func customerName(user *entity.User) string {
	if user == nil {
		return ""
	}
	if user.Firstname == "" && user.Lastname == "" {
		return user.Username
	}
	return user.Firstname + " " + user.Lastname
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func nullable(value decimal.NullDecimal) any {
	if !value.Valid {
		return ""
	}
	return value.Decimal.InexactFloat64()
}
