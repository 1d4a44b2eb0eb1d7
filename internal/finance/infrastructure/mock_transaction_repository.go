package infrastructure

import (
	"context"
	"sort"
	"strings"

	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

// MockTransactionRepository is an in-memory TransactionRepository for service
// tests. CategoryNames supplies the join that the SQL repository performs.
type MockTransactionRepository struct {
	Transactions  map[int]*domain.Transaction
	CategoryNames map[int]string
	NextID        int
	Err           error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions:  make(map[int]*domain.Transaction),
		CategoryNames: make(map[int]string),
		NextID:        1,
	}
}

func (m *MockTransactionRepository) Add(transaction domain.Transaction) domain.Transaction {
	if transaction.ID == 0 {
		transaction.ID = m.NextID
		m.NextID++
	} else if transaction.ID >= m.NextID {
		m.NextID = transaction.ID + 1
	}
	stored := transaction
	m.Transactions[stored.ID] = &stored
	return stored
}

func (m *MockTransactionRepository) FindForUser(_ context.Context, userID, sortBy, sortOrder string) ([]domain.TransactionWithCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var rows []domain.TransactionWithCategory
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		rows = append(rows, m.withCategory(*transaction))
	}

	descending := strings.EqualFold(sortOrder, "desc")
	sort.Slice(rows, func(i, j int) bool {
		var less bool
		switch strings.ToLower(sortBy) {
		case "amount":
			less = rows[i].Amount.LessThan(rows[j].Amount)
		case "type":
			less = rows[i].Type < rows[j].Type
		case "category":
			less = rows[i].CategoryName < rows[j].CategoryName
		default:
			less = rows[i].Date.Before(rows[j].Date)
		}
		if descending {
			return !less
		}
		return less
	})
	return rows, nil
}

func (m *MockTransactionRepository) FindByID(_ context.Context, transactionID int, userID string) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	transaction, ok := m.Transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return nil, financeErrors.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (m *MockTransactionRepository) FindByIDWithCategory(ctx context.Context, transactionID int, userID string) (*domain.TransactionWithCategory, error) {
	transaction, err := m.FindByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	row := m.withCategory(*transaction)
	return &row, nil
}

func (m *MockTransactionRepository) FindByCategory(_ context.Context, categoryID int, userID string, skip, take int) ([]domain.TransactionWithCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var rows []domain.TransactionWithCategory
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID || transaction.CategoryID != categoryID {
			continue
		}
		rows = append(rows, m.withCategory(*transaction))
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	if skip >= len(rows) {
		return nil, nil
	}
	rows = rows[skip:]
	if take < len(rows) {
		rows = rows[:take]
	}
	return rows, nil
}

func (m *MockTransactionRepository) HasInCategory(_ context.Context, categoryID int, userID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransactionRepository) Save(_ context.Context, transaction *domain.Transaction) error {
	if m.Err != nil {
		return m.Err
	}
	transaction.ID = m.NextID
	m.NextID++
	stored := *transaction
	m.Transactions[stored.ID] = &stored
	return nil
}

func (m *MockTransactionRepository) Update(_ context.Context, transaction *domain.Transaction) error {
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.Transactions[transaction.ID]
	if !ok || stored.UserID != transaction.UserID {
		return financeErrors.ErrTransactionNotFound
	}
	copied := *transaction
	m.Transactions[copied.ID] = &copied
	return nil
}

func (m *MockTransactionRepository) Delete(_ context.Context, transactionID int, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	transaction, ok := m.Transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return financeErrors.ErrTransactionNotFound
	}
	delete(m.Transactions, transactionID)
	return nil
}

func (m *MockTransactionRepository) ReassignCategoryTx(_ context.Context, _ domain.Tx, fromCategoryID, toCategoryID int, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.CategoryID == fromCategoryID {
			transaction.CategoryID = toCategoryID
		}
	}
	return nil
}

func (m *MockTransactionRepository) ReassignIncompatibleTx(_ context.Context, _ domain.Tx, categoryID, toCategoryID int, userID string, transactionType domain.TransactionType) error {
	if m.Err != nil {
		return m.Err
	}
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.CategoryID == categoryID && transaction.Type == transactionType {
			transaction.CategoryID = toCategoryID
		}
	}
	return nil
}

func (m *MockTransactionRepository) withCategory(transaction domain.Transaction) domain.TransactionWithCategory {
	return domain.TransactionWithCategory{
		Transaction:  transaction,
		CategoryName: m.CategoryNames[transaction.CategoryID],
	}
}
