package application

import (
	"context"
	"errors"
	"time"

	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"

	"github.com/shopspring/decimal"
)

type TransactionView struct {
	ID           int                    `json:"id"`
	Amount       decimal.Decimal        `json:"amount"`
	Date         time.Time              `json:"date"`
	Type         domain.TransactionType `json:"type"`
	CategoryID   int                    `json:"category_id"`
	CategoryName string                 `json:"category_name"`
}

type TransactionInput struct {
	Amount     decimal.Decimal
	Date       time.Time
	Type       domain.TransactionType
	CategoryID int
}

// TransactionService owns the transaction lifecycle and enforces the
// category/transaction type compatibility rule on every write.
type TransactionService struct {
	transactions domain.TransactionRepository
	categories   domain.CategoryRepository
}

func NewTransactionService(transactions domain.TransactionRepository, categories domain.CategoryRepository) *TransactionService {
	return &TransactionService{transactions: transactions, categories: categories}
}

func (s *TransactionService) GetTransactions(ctx context.Context, userID, sortBy, sortOrder string) ([]TransactionView, error) {
	rows, err := s.transactions.FindForUser(ctx, userID, sortBy, sortOrder)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newTransactionView(row))
	}
	return views, nil
}

func (s *TransactionService) GetTransactionByID(ctx context.Context, transactionID int, userID string) (*TransactionView, error) {
	row, err := s.transactions.FindByIDWithCategory(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	view := newTransactionView(*row)
	return &view, nil
}

// CreateTransaction persists a new transaction. A zero category id resolves
// to the user's default category; the chosen category must exist, belong to
// the caller, and be type-compatible with the transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, input TransactionInput) (*TransactionView, error) {
	if !input.Type.Valid() {
		return nil, financeErrors.NewValidationError("Transaction type must be Income or Expense")
	}

	category, err := s.resolveCategory(ctx, userID, input.CategoryID, true)
	if err != nil {
		return nil, err
	}
	if !input.Type.CompatibleWith(category.Type) {
		return nil, financeErrors.ErrTypeMismatch
	}

	transaction := &domain.Transaction{
		UserID:     userID,
		Amount:     input.Amount,
		Date:       input.Date.UTC(),
		Type:       input.Type,
		CategoryID: category.ID,
	}
	if err := s.transactions.Save(ctx, transaction); err != nil {
		return nil, err
	}

	view := newTransactionView(domain.TransactionWithCategory{Transaction: *transaction, CategoryName: category.Name})
	return &view, nil
}

// UpdateTransaction replaces all mutable fields. Unlike create, a zero
// category id is not resolved to the default category here; it is simply an
// id no category has.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID int, userID string, input TransactionInput) (*TransactionView, error) {
	transaction, err := s.transactions.FindByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if !input.Type.Valid() {
		return nil, financeErrors.NewValidationError("Transaction type must be Income or Expense")
	}
	category, err := s.resolveCategory(ctx, userID, input.CategoryID, false)
	if err != nil {
		return nil, err
	}
	if !input.Type.CompatibleWith(category.Type) {
		return nil, financeErrors.ErrTypeMismatch
	}

	transaction.Amount = input.Amount
	transaction.Date = input.Date.UTC()
	transaction.Type = input.Type
	transaction.CategoryID = category.ID

	if err := s.transactions.Update(ctx, transaction); err != nil {
		return nil, err
	}

	view := newTransactionView(domain.TransactionWithCategory{Transaction: *transaction, CategoryName: category.Name})
	return &view, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID int, userID string) error {
	if _, err := s.transactions.FindByID(ctx, transactionID, userID); err != nil {
		return err
	}
	return s.transactions.Delete(ctx, transactionID, userID)
}

func (s *TransactionService) resolveCategory(ctx context.Context, userID string, categoryID int, defaultOnZero bool) (*domain.Category, error) {
	if categoryID == 0 && defaultOnZero {
		defaultCategory, err := s.categories.FindDefault(ctx, userID)
		if errors.Is(err, financeErrors.ErrCategoryNotFound) {
			return nil, financeErrors.ErrDefaultCategoryMissing
		}
		if err != nil {
			return nil, err
		}
		return defaultCategory, nil
	}

	category, err := s.categories.FindByID(ctx, categoryID, userID)
	if errors.Is(err, financeErrors.ErrCategoryNotFound) {
		return nil, financeErrors.ErrInvalidCategory
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func newTransactionView(row domain.TransactionWithCategory) TransactionView {
	return TransactionView{
		ID:           row.ID,
		Amount:       row.Amount,
		Date:         row.Date,
		Type:         row.Type,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
	}
}
