package domain

import (
	"context"
	"strings"
)

// DefaultCategoryName is the reserved name of the per-user fallback category.
// It is seeded at registration with type Neutral and can never be renamed,
// retyped, or deleted. Transactions land here when their own category is
// deleted or retyped to an incompatible type.
const DefaultCategoryName = "WITHOUT CATEGORY"

const MaxCategoryNameLength = 50

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "Income"
	CategoryTypeExpense CategoryType = "Expense"
	CategoryTypeNeutral CategoryType = "Neutral"
)

func ParseCategoryType(value string) (CategoryType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "income":
		return CategoryTypeIncome, true
	case "expense":
		return CategoryTypeExpense, true
	case "neutral":
		return CategoryTypeNeutral, true
	default:
		return "", false
	}
}

func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense || t == CategoryTypeNeutral
}

type Category struct {
	ID     int
	UserID string // user UUID
	Name   string
	Type   CategoryType
}

// IsDefault reports whether this is the reserved fallback category.
func (c *Category) IsDefault() bool {
	return c.Name == DefaultCategoryName
}

type CategoryWithCount struct {
	Category
	TransactionCount int
}

// Tx is a unit of work spanning multiple repository calls. The SQL-backed
// repositories hand out a *sql.Tx behind this interface.
type Tx interface {
	Commit() error
	Rollback() error
}

type CategoryRepository interface {
	FindForUser(ctx context.Context, userID, sortBy, sortOrder string) ([]CategoryWithCount, error)
	FindByID(ctx context.Context, categoryID int, userID string) (*Category, error)
	FindByIDWithCount(ctx context.Context, categoryID int, userID string) (*CategoryWithCount, error)
	FindDefault(ctx context.Context, userID string) (*Category, error)
	Save(ctx context.Context, category *Category) error
	BeginTx(ctx context.Context) (Tx, error)
	UpdateTx(ctx context.Context, tx Tx, category *Category) error
	DeleteTx(ctx context.Context, tx Tx, categoryID int, userID string) error
}
