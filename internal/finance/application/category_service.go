package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

const (
	minCategoryTransactionsTake = 1
	maxCategoryTransactionsTake = 200
)

type CategoryView struct {
	ID               int                 `json:"id"`
	Name             string              `json:"name"`
	Type             domain.CategoryType `json:"type"`
	TransactionCount int                 `json:"transaction_count"`
}

// CategoryService owns the category lifecycle: listing, creation, and the
// invariant-preserving update/delete cascades that keep every transaction
// attached to a type-compatible category.
type CategoryService struct {
	categories   domain.CategoryRepository
	transactions domain.TransactionRepository
}

func NewCategoryService(categories domain.CategoryRepository, transactions domain.TransactionRepository) *CategoryService {
	return &CategoryService{categories: categories, transactions: transactions}
}

func (s *CategoryService) GetCategories(ctx context.Context, userID, sortBy, sortOrder string) ([]CategoryView, error) {
	rows, err := s.categories.FindForUser(ctx, userID, sortBy, sortOrder)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newCategoryView(row))
	}
	return views, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, categoryID int, userID string) (*CategoryView, error) {
	row, err := s.categories.FindByIDWithCount(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	view := newCategoryView(*row)
	return &view, nil
}

// GetCategoryTransactions pages through the transactions of one category,
// oldest first. The page size is clamped to [1, 200].
func (s *CategoryService) GetCategoryTransactions(ctx context.Context, categoryID int, userID string, skip, take int) ([]TransactionView, error) {
	if _, err := s.categories.FindByID(ctx, categoryID, userID); err != nil {
		return nil, err
	}

	if skip < 0 {
		skip = 0
	}
	if take < minCategoryTransactionsTake {
		take = minCategoryTransactionsTake
	}
	if take > maxCategoryTransactionsTake {
		take = maxCategoryTransactionsTake
	}

	rows, err := s.transactions.FindByCategory(ctx, categoryID, userID, skip, take)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newTransactionView(row))
	}
	return views, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID, name string, categoryType domain.CategoryType) (*CategoryView, error) {
	if err := validateCategoryInput(name, categoryType); err != nil {
		return nil, err
	}

	category := &domain.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	return &CategoryView{ID: category.ID, Name: category.Name, Type: category.Type, TransactionCount: 0}, nil
}

// UpdateCategory renames and/or retypes a category. When the type changes to
// Income or Expense, transactions of the opposite type no longer fit and are
// reassigned to the user's default category; the category update and every
// reassignment commit as one unit.
func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID int, userID, name string, categoryType domain.CategoryType) error {
	category, err := s.categories.FindByID(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if category.IsDefault() {
		return financeErrors.ErrDefaultCategoryImmutable
	}
	if err := validateCategoryInput(name, categoryType); err != nil {
		return err
	}

	oldType := category.Type
	category.Name = name
	category.Type = categoryType

	tx, err := s.categories.BeginTx(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			safeRollback(tx)
		}
	}()

	if categoryType != oldType && categoryType != domain.CategoryTypeNeutral {
		defaultCategory, err := s.categories.FindDefault(ctx, userID)
		switch {
		case errors.Is(err, financeErrors.ErrCategoryNotFound):
			// Registration seeds a default category for every user, so this
			// should be unreachable. The update still goes through, but the
			// skipped reassignment leaves incompatible transactions behind.
			log.Printf("invariant violation: user %s has no default category, skipping reassignment", userID)
		case err != nil:
			return err
		default:
			incompatible := domain.TransactionTypeIncome
			if categoryType == domain.CategoryTypeIncome {
				incompatible = domain.TransactionTypeExpense
			}
			if err := s.transactions.ReassignIncompatibleTx(ctx, tx, category.ID, defaultCategory.ID, userID, incompatible); err != nil {
				return err
			}
		}
	}

	if err := s.categories.UpdateTx(ctx, tx, category); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// DeleteCategory removes a category after moving all of its transactions to
// the default category. Reassignment and removal commit atomically; if the
// default category is missing the delete is refused so no transaction is
// orphaned.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID int, userID string) error {
	category, err := s.categories.FindByID(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if category.IsDefault() {
		return financeErrors.ErrDefaultCategoryImmutable
	}

	hasTransactions, err := s.transactions.HasInCategory(ctx, categoryID, userID)
	if err != nil {
		return err
	}

	var defaultCategory *domain.Category
	if hasTransactions {
		defaultCategory, err = s.categories.FindDefault(ctx, userID)
		if errors.Is(err, financeErrors.ErrCategoryNotFound) {
			return financeErrors.ErrDefaultCategoryMissing
		}
		if err != nil {
			return err
		}
	}

	tx, err := s.categories.BeginTx(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			safeRollback(tx)
		}
	}()

	if hasTransactions {
		if err := s.transactions.ReassignCategoryTx(ctx, tx, category.ID, defaultCategory.ID, userID); err != nil {
			return err
		}
	}
	if err := s.categories.DeleteTx(ctx, tx, category.ID, userID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func validateCategoryInput(name string, categoryType domain.CategoryType) error {
	if strings.TrimSpace(name) == "" {
		return financeErrors.NewValidationError("Category name must not be empty")
	}
	if len(name) > domain.MaxCategoryNameLength {
		return financeErrors.NewValidationError(fmt.Sprintf("Category name must be at most %d characters", domain.MaxCategoryNameLength))
	}
	if !categoryType.Valid() {
		return financeErrors.NewValidationError("Category type must be Income, Expense or Neutral")
	}
	return nil
}

func newCategoryView(row domain.CategoryWithCount) CategoryView {
	return CategoryView{
		ID:               row.ID,
		Name:             row.Name,
		Type:             row.Type,
		TransactionCount: row.TransactionCount,
	}
}

func safeRollback(tx domain.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Printf("Error during transaction rollback: %v", err)
	}
}
