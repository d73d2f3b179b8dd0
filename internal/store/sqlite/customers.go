package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seoulstyle/storefront/internal/store"
)

// Customers implements store.CustomerStore.
type Customers struct {
	db *sql.DB
}

func (s *Customers) Create(ctx context.Context, c store.Customer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (cust_id, cust_pwd, cust_name, phone,
			agree_terms, agree_privacy, agree_marketing, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CustID, c.CustPwd, c.CustName, c.Phone,
		boolToInt(c.AgreeTerms), boolToInt(c.AgreePrivacy), boolToInt(c.AgreeMarketing),
		toMillis(c.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (s *Customers) Get(ctx context.Context, custID string) (*store.Customer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT cust_id, cust_pwd, cust_name, phone,
			agree_terms, agree_privacy, agree_marketing, created_at
		FROM customers WHERE cust_id = ?`, custID)

	var c store.Customer
	var terms, privacy, marketing int
	var createdAt int64
	err := row.Scan(&c.CustID, &c.CustPwd, &c.CustName, &c.Phone,
		&terms, &privacy, &marketing, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select customer: %w", err)
	}
	c.AgreeTerms = terms != 0
	c.AgreePrivacy = privacy != 0
	c.AgreeMarketing = marketing != 0
	c.CreatedAt = fromMillis(createdAt)
	return &c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation matches modernc's constraint error text; the driver has
// no typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
