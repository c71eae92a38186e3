package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-ordering-system/internal/domain"
)

type TransactionsRepositoryInterface interface {
	Insert(ctx context.Context, tx domain.WalletTransaction) (domain.WalletTransaction, error)
	GetByTransactionID(ctx context.Context, transactionID string) (domain.WalletTransaction, error)
	SetStatus(ctx context.Context, transactionID string, status domain.PaymentStatus) error
}

type TransactionsRepository struct {
	db *sql.DB
}

func NewTransactionsRepository(db *sql.DB) TransactionsRepositoryInterface {
	return &TransactionsRepository{db: db}
}

const txColumns = `id, order_id, transaction_id, reference_number, amount, status,
	checkout_url, expires_at, created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (domain.WalletTransaction, error) {
	var (
		t       domain.WalletTransaction
		orderID sql.NullInt64
	)
	err := row.Scan(&t.ID, &orderID, &t.TransactionID, &t.ReferenceNumber, &t.Amount,
		&t.Status, &t.CheckoutURL, &t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt)
	if orderID.Valid {
		t.OrderID = int(orderID.Int64)
	}
	return t, err
}

func (r *TransactionsRepository) Insert(ctx context.Context, tx domain.WalletTransaction) (domain.WalletTransaction, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO wallet_transactions
			(order_id, transaction_id, reference_number, amount, status, checkout_url, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+txColumns,
		tx.OrderID, tx.TransactionID, tx.ReferenceNumber, tx.Amount, tx.Status,
		tx.CheckoutURL, tx.ExpiresAt)
	created, err := scanTransaction(row)
	if err != nil {
		return domain.WalletTransaction{}, fmt.Errorf("insert wallet transaction: %w", err)
	}
	return created, nil
}

func (r *TransactionsRepository) GetByTransactionID(ctx context.Context, transactionID string) (domain.WalletTransaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM wallet_transactions WHERE transaction_id = $1`, transactionID)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WalletTransaction{}, fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.WalletTransaction{}, fmt.Errorf("get wallet transaction %s: %w", transactionID, err)
	}
	return t, nil
}

func (r *TransactionsRepository) SetStatus(ctx context.Context, transactionID string, status domain.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wallet_transactions SET status = $1, updated_at = NOW()
		WHERE transaction_id = $2`, status, transactionID)
	if err != nil {
		return fmt.Errorf("update wallet transaction %s: %w", transactionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
	}
	return nil
}
