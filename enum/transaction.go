package enum

type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"
	TransactionApproved TransactionStatus = "approved"
	TransactionDeclined TransactionStatus = "declined"
)

type TransactionType string

const (
	TransactionCard   TransactionType = "card"
	TransactionCrypto TransactionType = "crypto"
)
