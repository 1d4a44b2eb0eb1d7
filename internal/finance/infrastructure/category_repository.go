package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindForUser(ctx context.Context, userID, sortBy, sortOrder string) ([]domain.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.user_id, c.name, c.type, COUNT(t.id)
		FROM categories c
		LEFT JOIN transactions t ON t.category_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id, c.user_id, c.name, c.type
		ORDER BY ` + categoryOrderClause(sortBy, sortOrder)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.CategoryWithCount
	for rows.Next() {
		var category domain.CategoryWithCount
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.TransactionCount); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, categoryID int, userID string) (*domain.Category, error) {
	query := "SELECT id, user_id, name, type FROM categories WHERE id = $1 AND user_id = $2"

	var category domain.Category
	err := r.db.QueryRowContext(ctx, query, categoryID, userID).
		Scan(&category.ID, &category.UserID, &category.Name, &category.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByIDWithCount(ctx context.Context, categoryID int, userID string) (*domain.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.user_id, c.name, c.type, COUNT(t.id)
		FROM categories c
		LEFT JOIN transactions t ON t.category_id = c.id
		WHERE c.id = $1 AND c.user_id = $2
		GROUP BY c.id, c.user_id, c.name, c.type`

	var category domain.CategoryWithCount
	err := r.db.QueryRowContext(ctx, query, categoryID, userID).
		Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.TransactionCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindDefault(ctx context.Context, userID string) (*domain.Category, error) {
	query := "SELECT id, user_id, name, type FROM categories WHERE user_id = $1 AND name = $2"

	var category domain.Category
	err := r.db.QueryRowContext(ctx, query, userID, domain.DefaultCategoryName).
		Scan(&category.ID, &category.UserID, &category.Name, &category.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	query := "INSERT INTO categories (user_id, name, type) VALUES ($1, $2, $3) RETURNING id"
	return r.db.QueryRowContext(ctx, query, category.UserID, category.Name, category.Type).Scan(&category.ID)
}

func (r *CategoryRepository) BeginTx(ctx context.Context) (domain.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *CategoryRepository) UpdateTx(ctx context.Context, tx domain.Tx, category *domain.Category) error {
	sqlTx, err := sqlTxFrom(tx)
	if err != nil {
		return err
	}
	_, err = sqlTx.ExecContext(ctx,
		"UPDATE categories SET name = $1, type = $2 WHERE id = $3 AND user_id = $4",
		category.Name, category.Type, category.ID, category.UserID,
	)
	return err
}

func (r *CategoryRepository) DeleteTx(ctx context.Context, tx domain.Tx, categoryID int, userID string) error {
	sqlTx, err := sqlTxFrom(tx)
	if err != nil {
		return err
	}
	_, err = sqlTx.ExecContext(ctx,
		"DELETE FROM categories WHERE id = $1 AND user_id = $2",
		categoryID, userID,
	)
	return err
}

func categoryOrderClause(sortBy, sortOrder string) string {
	column := "c.name"
	if strings.EqualFold(sortBy, "type") {
		column = "c.type"
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}

func sqlTxFrom(tx domain.Tx) (*sql.Tx, error) {
	sqlTx, ok := tx.(*sql.Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	return sqlTx, nil
}
