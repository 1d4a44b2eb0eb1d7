package interfaces

import (
	"context"

	"financetracker/internal/finance/application"
)

type MockTransactionService struct {
	transactions []application.TransactionView
	transaction  *application.TransactionView
	err          error

	lastSortBy    string
	lastSortOrder string
	lastInput     application.TransactionInput
	deletedID     int
}

func (m *MockTransactionService) GetTransactions(_ context.Context, _, sortBy, sortOrder string) ([]application.TransactionView, error) {
	m.lastSortBy = sortBy
	m.lastSortOrder = sortOrder
	if m.err != nil {
		return nil, m.err
	}
	return m.transactions, nil
}

func (m *MockTransactionService) GetTransactionByID(_ context.Context, _ int, _ string) (*application.TransactionView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.transaction, nil
}

func (m *MockTransactionService) CreateTransaction(_ context.Context, _ string, input application.TransactionInput) (*application.TransactionView, error) {
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}
	return m.transaction, nil
}

func (m *MockTransactionService) UpdateTransaction(_ context.Context, _ int, _ string, input application.TransactionInput) (*application.TransactionView, error) {
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}
	return m.transaction, nil
}

func (m *MockTransactionService) DeleteTransaction(_ context.Context, transactionID int, _ string) error {
	m.deletedID = transactionID
	return m.err
}
