package interfaces

import (
	"context"

	"financetracker/internal/finance/application"
	"financetracker/internal/finance/domain"
)

type MockCategoryService struct {
	categories   []application.CategoryView
	category     *application.CategoryView
	transactions []application.TransactionView
	err          error

	lastSortBy    string
	lastSortOrder string
	lastSkip      int
	lastTake      int
	updatedName   string
	updatedType   domain.CategoryType
	deletedID     int
}

func (m *MockCategoryService) GetCategories(_ context.Context, _, sortBy, sortOrder string) ([]application.CategoryView, error) {
	m.lastSortBy = sortBy
	m.lastSortOrder = sortOrder
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *MockCategoryService) GetCategoryByID(_ context.Context, _ int, _ string) (*application.CategoryView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func (m *MockCategoryService) GetCategoryTransactions(_ context.Context, _ int, _ string, skip, take int) ([]application.TransactionView, error) {
	m.lastSkip = skip
	m.lastTake = take
	if m.err != nil {
		return nil, m.err
	}
	return m.transactions, nil
}

func (m *MockCategoryService) CreateCategory(_ context.Context, _, name string, categoryType domain.CategoryType) (*application.CategoryView, error) {
	m.updatedName = name
	m.updatedType = categoryType
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func (m *MockCategoryService) UpdateCategory(_ context.Context, _ int, _, name string, categoryType domain.CategoryType) error {
	m.updatedName = name
	m.updatedType = categoryType
	return m.err
}

func (m *MockCategoryService) DeleteCategory(_ context.Context, categoryID int, _ string) error {
	m.deletedID = categoryID
	return m.err
}
