package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/bnema/bank-accounts-cli/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS accounts (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	number        INTEGER NOT NULL UNIQUE,
	balance       REAL    NOT NULL,
	interest_rate REAL    NOT NULL
)`

type Repository struct {
	sqlDB *sql.DB
}

var _ ports.AccountRepository = (*Repository)(nil)

func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Repository{sqlDB: sqlDB}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int
	if err := r.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}

	return count, nil
}

func (r *Repository) Add(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := r.sqlDB.ExecContext(ctx,
		`INSERT INTO accounts (number, balance, interest_rate) VALUES (?, ?, ?)`,
		int(account.Number()), account.Balance(), account.InterestRate(),
	)
	if err != nil {
		return fmt.Errorf("insert account %s: %w", account.Number(), err)
	}

	return nil
}

func (r *Repository) Remove(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := r.sqlDB.ExecContext(ctx, `DELETE FROM accounts WHERE number = ?`, int(account.Number())); err != nil {
		return fmt.Errorf("delete account %s: %w", account.Number(), err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, number domain.AccountNumber) (*domain.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	row := r.sqlDB.QueryRowContext(ctx,
		`SELECT number, balance, interest_rate FROM accounts WHERE number = ?`,
		int(number),
	)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return account, true, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.sqlDB.QueryContext(ctx, `SELECT number, balance, interest_rate FROM accounts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *Repository) Update(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := r.sqlDB.ExecContext(ctx,
		`UPDATE accounts SET balance = ?, interest_rate = ? WHERE number = ?`,
		account.Balance(), account.InterestRate(), int(account.Number()),
	)
	if err != nil {
		return fmt.Errorf("update account %s: %w", account.Number(), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account %s: %w", account.Number(), err)
	}
	if affected == 0 {
		return fmt.Errorf("update account %s: %w", account.Number(), domain.ErrAccountNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		number       int
		balance      float64
		interestRate float64
	)
	if err := row.Scan(&number, &balance, &interestRate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	account, err := domain.NewAccount(
		domain.AccountNumber(number),
		domain.WithBalance(balance),
		domain.WithInterestRate(interestRate),
	)
	if err != nil {
		return nil, fmt.Errorf("decode account %d: %w", number, err)
	}

	return account, nil
}
