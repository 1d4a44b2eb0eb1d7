package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

func ParseTransactionType(value string) (TransactionType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "income":
		return TransactionTypeIncome, true
	case "expense":
		return TransactionTypeExpense, true
	default:
		return "", false
	}
}

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// CompatibleWith implements the category/transaction compatibility rule:
// a Neutral category accepts any transaction, otherwise the types must match.
func (t TransactionType) CompatibleWith(categoryType CategoryType) bool {
	return categoryType == CategoryTypeNeutral ||
		(t == TransactionTypeIncome && categoryType == CategoryTypeIncome) ||
		(t == TransactionTypeExpense && categoryType == CategoryTypeExpense)
}

type Transaction struct {
	ID         int
	UserID     string // user UUID
	Amount     decimal.Decimal
	Date       time.Time // normalized to UTC
	Type       TransactionType
	CategoryID int
}

type TransactionWithCategory struct {
	Transaction
	CategoryName string
}

type TransactionRepository interface {
	FindForUser(ctx context.Context, userID, sortBy, sortOrder string) ([]TransactionWithCategory, error)
	FindByID(ctx context.Context, transactionID int, userID string) (*Transaction, error)
	FindByIDWithCategory(ctx context.Context, transactionID int, userID string) (*TransactionWithCategory, error)
	FindByCategory(ctx context.Context, categoryID int, userID string, skip, take int) ([]TransactionWithCategory, error)
	HasInCategory(ctx context.Context, categoryID int, userID string) (bool, error)
	Save(ctx context.Context, transaction *Transaction) error
	Update(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, transactionID int, userID string) error
	// ReassignCategoryTx moves every transaction of fromCategoryID to
	// toCategoryID within the given unit of work.
	ReassignCategoryTx(ctx context.Context, tx Tx, fromCategoryID, toCategoryID int, userID string) error
	// ReassignIncompatibleTx moves only the transactions of the given type
	// out of categoryID, used when a category is retyped.
	ReassignIncompatibleTx(ctx context.Context, tx Tx, categoryID, toCategoryID int, userID string, transactionType TransactionType) error
}
