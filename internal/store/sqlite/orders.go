package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/seoulstyle/storefront/internal/store"
)

// Orders implements store.OrderStore. Header and line items live in separate
// tables; Create inserts them inside one SQL transaction so a half-written
// order never becomes visible, which matches the document backend's
// single-document put.
type Orders struct {
	db      *sql.DB
	nowFunc func() time.Time
}

func (s *Orders) Create(ctx context.Context, o store.Order) error {
	if o.OrdDate.IsZero() {
		o.OrdDate = s.nowFunc()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (ord_no, cust_id, ord_date, ord_amount, ord_status)
		VALUES (?, ?, ?, ?, ?)`,
		o.OrdNo, o.CustID, toMillis(o.OrdDate), o.OrdAmount, o.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ord_items (ord_item_no, ord_no, cart_seq_no, prod_cd,
				prod_name, prod_size, ord_qty, price, review_written)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.OrdItemNo, it.OrdNo, it.CartSeqNo, it.ProdCD,
			it.ProdName, it.ProdSize, it.OrdQty, it.Price, boolToInt(it.ReviewWritten))
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (s *Orders) Finalize(ctx context.Context, ordNo int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET ord_status = ? WHERE ord_no = ? AND ord_status = ?",
		store.OrderCompleted, ordNo, store.OrderPending)
	if err != nil {
		return fmt.Errorf("finalize order: %w", err)
	}
	return requireRow(res)
}

func (s *Orders) Delete(ctx context.Context, ordNo int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ord_items WHERE ord_no = ?", ordNo); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE ord_no = ?", ordNo); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

func (s *Orders) ListByCustomer(ctx context.Context, custID string) ([]store.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ord_no, cust_id, ord_date, ord_amount, ord_status
		FROM orders WHERE cust_id = ? ORDER BY ord_no DESC`, custID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []store.Order
	for rows.Next() {
		var o store.Order
		var ordDate int64
		if err := rows.Scan(&o.OrdNo, &o.CustID, &ordDate, &o.OrdAmount, &o.Status); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.OrdDate = fromMillis(ordDate)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.itemsFor(ctx, orders[i].OrdNo)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *Orders) itemsFor(ctx context.Context, ordNo int64) ([]store.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ord_item_no, ord_no, cart_seq_no, prod_cd, prod_name,
			prod_size, ord_qty, price, review_written
		FROM ord_items WHERE ord_no = ? ORDER BY ord_item_no`, ordNo)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []store.OrderItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *Orders) GetItem(ctx context.Context, ordItemNo string) (*store.OrderItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT ord_item_no, ord_no, cart_seq_no, prod_cd, prod_name,
			prod_size, ord_qty, price, review_written
		FROM ord_items WHERE ord_item_no = ?`, ordItemNo)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Orders) SetReviewWritten(ctx context.Context, ordItemNo string, written bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE ord_items SET review_written = ? WHERE ord_item_no = ?",
		boolToInt(written), ordItemNo)
	if err != nil {
		return fmt.Errorf("set review written: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*store.OrderItem, error) {
	var it store.OrderItem
	var written int
	err := row.Scan(&it.OrdItemNo, &it.OrdNo, &it.CartSeqNo, &it.ProdCD, &it.ProdName,
		&it.ProdSize, &it.OrdQty, &it.Price, &written)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order item: %w", err)
	}
	it.ReviewWritten = written != 0
	return &it, nil
}
