package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) FindForUser(ctx context.Context, userID, sortBy, sortOrder string) ([]domain.TransactionWithCategory, error) {
	query := `
		SELECT t.id, t.user_id, t.amount, t.date, t.type, t.category_id, c.name
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY ` + transactionOrderClause(sortBy, sortOrder)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionsWithCategory(rows)
}

func (r *TransactionRepository) FindByID(ctx context.Context, transactionID int, userID string) (*domain.Transaction, error) {
	query := "SELECT id, user_id, amount, date, type, category_id FROM transactions WHERE id = $1 AND user_id = $2"

	var transaction domain.Transaction
	err := r.db.QueryRowContext(ctx, query, transactionID, userID).
		Scan(&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Date, &transaction.Type, &transaction.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) FindByIDWithCategory(ctx context.Context, transactionID int, userID string) (*domain.TransactionWithCategory, error) {
	query := `
		SELECT t.id, t.user_id, t.amount, t.date, t.type, t.category_id, c.name
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1 AND t.user_id = $2`

	var transaction domain.TransactionWithCategory
	err := r.db.QueryRowContext(ctx, query, transactionID, userID).
		Scan(&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Date, &transaction.Type, &transaction.CategoryID, &transaction.CategoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) FindByCategory(ctx context.Context, categoryID int, userID string, skip, take int) ([]domain.TransactionWithCategory, error) {
	query := `
		SELECT t.id, t.user_id, t.amount, t.date, t.type, t.category_id, c.name
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.category_id = $1 AND t.user_id = $2
		ORDER BY t.date ASC
		OFFSET $3 LIMIT $4`

	rows, err := r.db.QueryContext(ctx, query, categoryID, userID, skip, take)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionsWithCategory(rows)
}

func (r *TransactionRepository) HasInCategory(ctx context.Context, categoryID int, userID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM transactions WHERE category_id = $1 AND user_id = $2)"
	err := r.db.QueryRowContext(ctx, query, categoryID, userID).Scan(&exists)
	return exists, err
}

func (r *TransactionRepository) Save(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, amount, date, type, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		transaction.UserID, transaction.Amount, transaction.Date, transaction.Type, transaction.CategoryID,
	).Scan(&transaction.ID)
}

func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE transactions SET amount = $1, date = $2, type = $3, category_id = $4 WHERE id = $5 AND user_id = $6",
		transaction.Amount, transaction.Date, transaction.Type, transaction.CategoryID, transaction.ID, transaction.UserID,
	)
	return err
}

func (r *TransactionRepository) Delete(ctx context.Context, transactionID int, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2",
		transactionID, userID,
	)
	return err
}

func (r *TransactionRepository) ReassignCategoryTx(ctx context.Context, tx domain.Tx, fromCategoryID, toCategoryID int, userID string) error {
	sqlTx, err := sqlTxFrom(tx)
	if err != nil {
		return err
	}
	_, err = sqlTx.ExecContext(ctx,
		"UPDATE transactions SET category_id = $1 WHERE category_id = $2 AND user_id = $3",
		toCategoryID, fromCategoryID, userID,
	)
	return err
}

func (r *TransactionRepository) ReassignIncompatibleTx(ctx context.Context, tx domain.Tx, categoryID, toCategoryID int, userID string, transactionType domain.TransactionType) error {
	sqlTx, err := sqlTxFrom(tx)
	if err != nil {
		return err
	}
	_, err = sqlTx.ExecContext(ctx,
		"UPDATE transactions SET category_id = $1 WHERE category_id = $2 AND user_id = $3 AND type = $4",
		toCategoryID, categoryID, userID, transactionType,
	)
	return err
}

func transactionOrderClause(sortBy, sortOrder string) string {
	column := "t.date"
	switch strings.ToLower(sortBy) {
	case "amount":
		column = "t.amount"
	case "type":
		column = "t.type"
	case "date":
		column = "t.date"
	case "category":
		column = "c.name"
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}

func scanTransactionsWithCategory(rows *sql.Rows) ([]domain.TransactionWithCategory, error) {
	var transactions []domain.TransactionWithCategory
	for rows.Next() {
		var transaction domain.TransactionWithCategory
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Date,
			&transaction.Type, &transaction.CategoryID, &transaction.CategoryName); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
