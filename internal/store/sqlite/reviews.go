package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seoulstyle/storefront/internal/store"
)

// Reviews implements store.ReviewStore. The UNIQUE constraint on ord_item_no
// is the one-review-per-line-item invariant.
type Reviews struct {
	db      *sql.DB
	nowFunc func() time.Time
}

func (s *Reviews) Upsert(ctx context.Context, r store.Review) (string, error) {
	var existing string
	err := s.db.QueryRowContext(ctx,
		"SELECT eval_seq_no FROM prod_evals WHERE ord_item_no = ?", r.OrdItemNo).
		Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		r.EvalSeqNo = uuid.NewString()
	case err != nil:
		return "", fmt.Errorf("select review: %w", err)
	default:
		r.EvalSeqNo = existing
	}
	r.EvalDate = s.nowFunc()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO prod_evals (eval_seq_no, cust_id, cust_name, prod_cd, ord_no,
			ord_item_no, eval_score, eval_comment, eval_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ord_item_no) DO UPDATE SET
			eval_score = excluded.eval_score,
			eval_comment = excluded.eval_comment,
			eval_date = excluded.eval_date`,
		r.EvalSeqNo, r.CustID, r.CustName, r.ProdCD, r.OrdNo,
		r.OrdItemNo, r.EvalScore, r.EvalComment, toMillis(r.EvalDate))
	if err != nil {
		return "", fmt.Errorf("upsert review: %w", err)
	}
	return r.EvalSeqNo, nil
}

func (s *Reviews) Delete(ctx context.Context, evalSeqNo, custID string) (*store.Review, error) {
	r, err := s.get(ctx, evalSeqNo, custID)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM prod_evals WHERE eval_seq_no = ? AND cust_id = ?", evalSeqNo, custID)
	if err != nil {
		return nil, fmt.Errorf("delete review: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Reviews) get(ctx context.Context, evalSeqNo, custID string) (*store.Review, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT eval_seq_no, cust_id, cust_name, prod_cd, ord_no,
			ord_item_no, eval_score, eval_comment, eval_date
		FROM prod_evals WHERE eval_seq_no = ? AND cust_id = ?`, evalSeqNo, custID)
	r, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return r, err
}

func (s *Reviews) ListByProduct(ctx context.Context, prodCD string) ([]store.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT eval_seq_no, cust_id, cust_name, prod_cd, ord_no,
			ord_item_no, eval_score, eval_comment, eval_date
		FROM prod_evals WHERE prod_cd = ? ORDER BY eval_date DESC`, prodCD)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	var reviews []store.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *r)
	}
	return reviews, rows.Err()
}

func scanReview(row rowScanner) (*store.Review, error) {
	var r store.Review
	var evalDate int64
	err := row.Scan(&r.EvalSeqNo, &r.CustID, &r.CustName, &r.ProdCD, &r.OrdNo,
		&r.OrdItemNo, &r.EvalScore, &r.EvalComment, &evalDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	r.EvalDate = fromMillis(evalDate)
	return &r, nil
}
