package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/seoulstyle/storefront/internal/store"
)

// Carts implements store.CartStore. The active-cart read joins the live
// product row; an inner join drops entries whose product vanished, matching
// the document backend.
type Carts struct {
	db *sql.DB
}

func (s *Carts) ListActive(ctx context.Context, custID string) ([]store.CartLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.cart_seq_no, c.cust_id, c.prod_cd, c.prod_size, c.ord_qty, c.created_at,
			p.prod_name, p.price, p.prod_img
		FROM carts c
		JOIN products p ON p.prod_cd = c.prod_cd
		WHERE c.cust_id = ? AND c.ord_yn = 0
		ORDER BY c.created_at, c.cart_seq_no`, custID)
	if err != nil {
		return nil, fmt.Errorf("select cart: %w", err)
	}
	defer rows.Close()

	var lines []store.CartLine
	for rows.Next() {
		var l store.CartLine
		var createdAt int64
		if err := rows.Scan(&l.CartSeqNo, &l.CustID, &l.ProdCD, &l.ProdSize, &l.OrdQty,
			&createdAt, &l.ProdName, &l.Price, &l.ProdImg); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		l.CreatedAt = fromMillis(createdAt)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *Carts) Add(ctx context.Context, e store.CartEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO carts (cart_seq_no, cust_id, prod_cd, prod_size, ord_qty, ord_yn, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		e.CartSeqNo, e.CustID, e.ProdCD, e.ProdSize, e.OrdQty, toMillis(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert cart entry: %w", err)
	}
	return nil
}

func (s *Carts) Update(ctx context.Context, custID, seqNo string, size *string, qty *int) error {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if size != nil {
		sets = append(sets, "prod_size = ?")
		args = append(args, *size)
	}
	if qty != nil {
		q := *qty
		if q < 1 {
			q = 1
		} else if q > 10 {
			q = 10
		}
		sets = append(sets, "ord_qty = ?")
		args = append(args, q)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, seqNo, custID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE carts SET "+strings.Join(sets, ", ")+
			" WHERE cart_seq_no = ? AND cust_id = ? AND ord_yn = 0", args...)
	if err != nil {
		return fmt.Errorf("update cart entry: %w", err)
	}
	return requireRow(res)
}

func (s *Carts) Remove(ctx context.Context, custID, seqNo string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM carts WHERE cart_seq_no = ? AND cust_id = ?", seqNo, custID)
	if err != nil {
		return fmt.Errorf("delete cart entry: %w", err)
	}
	return requireRow(res)
}

// MarkOrdered flips ord_yn only when the row is still unordered, so a
// concurrent checkout that got there first makes this one roll back.
func (s *Carts) MarkOrdered(ctx context.Context, custID, seqNo string, ordNo int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE carts SET ord_yn = 1, ord_no = ?
		WHERE cart_seq_no = ? AND cust_id = ? AND ord_yn = 0`,
		ordNo, seqNo, custID)
	if err != nil {
		return fmt.Errorf("mark cart entry ordered: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrAlreadyOrdered
	}
	return nil
}

func (s *Carts) Unmark(ctx context.Context, custID, seqNo string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE carts SET ord_yn = 0, ord_no = NULL
		WHERE cart_seq_no = ? AND cust_id = ?`, seqNo, custID)
	if err != nil {
		return fmt.Errorf("unmark cart entry: %w", err)
	}
	return nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
