package infrastructure

import (
	"context"
	"sort"
	"strings"

	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

// MockTx records the outcome of a unit of work started on a mock repository.
type MockTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit() error {
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback() error {
	t.RolledBack = true
	return nil
}

// MockCategoryRepository is an in-memory CategoryRepository for service tests.
type MockCategoryRepository struct {
	Categories map[int]*domain.Category
	Counts     map[int]int
	NextID     int
	LastTx     *MockTx
	Err        error // when set, every call fails with it
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int]*domain.Category),
		Counts:     make(map[int]int),
		NextID:     1,
	}
}

func (m *MockCategoryRepository) Add(category domain.Category) domain.Category {
	if category.ID == 0 {
		category.ID = m.NextID
		m.NextID++
	} else if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	stored := category
	m.Categories[stored.ID] = &stored
	return stored
}

func (m *MockCategoryRepository) FindForUser(_ context.Context, userID, sortBy, sortOrder string) ([]domain.CategoryWithCount, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var rows []domain.CategoryWithCount
	for _, category := range m.Categories {
		if category.UserID != userID {
			continue
		}
		rows = append(rows, domain.CategoryWithCount{Category: *category, TransactionCount: m.Counts[category.ID]})
	}

	byType := strings.EqualFold(sortBy, "type")
	descending := strings.EqualFold(sortOrder, "desc")
	sort.Slice(rows, func(i, j int) bool {
		var less bool
		if byType {
			less = rows[i].Type < rows[j].Type
		} else {
			less = rows[i].Name < rows[j].Name
		}
		if descending {
			return !less
		}
		return less
	})
	return rows, nil
}

func (m *MockCategoryRepository) FindByID(_ context.Context, categoryID int, userID string) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	category, ok := m.Categories[categoryID]
	if !ok || category.UserID != userID {
		return nil, financeErrors.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *MockCategoryRepository) FindByIDWithCount(ctx context.Context, categoryID int, userID string) (*domain.CategoryWithCount, error) {
	category, err := m.FindByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	return &domain.CategoryWithCount{Category: *category, TransactionCount: m.Counts[category.ID]}, nil
}

func (m *MockCategoryRepository) FindDefault(_ context.Context, userID string) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, category := range m.Categories {
		if category.UserID == userID && category.Name == domain.DefaultCategoryName {
			copied := *category
			return &copied, nil
		}
	}
	return nil, financeErrors.ErrCategoryNotFound
}

func (m *MockCategoryRepository) Save(_ context.Context, category *domain.Category) error {
	if m.Err != nil {
		return m.Err
	}
	category.ID = m.NextID
	m.NextID++
	stored := *category
	m.Categories[stored.ID] = &stored
	return nil
}

func (m *MockCategoryRepository) BeginTx(_ context.Context) (domain.Tx, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.LastTx = &MockTx{}
	return m.LastTx, nil
}

func (m *MockCategoryRepository) UpdateTx(_ context.Context, _ domain.Tx, category *domain.Category) error {
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.Categories[category.ID]
	if !ok || stored.UserID != category.UserID {
		return financeErrors.ErrCategoryNotFound
	}
	stored.Name = category.Name
	stored.Type = category.Type
	return nil
}

func (m *MockCategoryRepository) DeleteTx(_ context.Context, _ domain.Tx, categoryID int, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	category, ok := m.Categories[categoryID]
	if !ok || category.UserID != userID {
		return financeErrors.ErrCategoryNotFound
	}
	delete(m.Categories, categoryID)
	return nil
}
