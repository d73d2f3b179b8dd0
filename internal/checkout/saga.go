// Package checkout converts a customer's pending cart entries into one order.
//
// The write sequence is deliberately not a cross-store transaction: the order
// is created first in PENDING, the cart entries are then flagged with
// conditional writes, and only a fully flagged cart promotes the order to
// COMPLETED. Any flagging failure triggers a compensating delete of the order
// and an unmark of the entries flagged so far, leaving the cart safe to
// retry. A process crash between flagging and Finalize leaves a PENDING order
// behind with no automatic reconciliation; that gap is inherited from the
// original system and left visible on purpose.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/seoulstyle/storefront/internal/store"
)

// ErrEmptyCart means no unordered cart entry survived the snapshot.
var ErrEmptyCart = errors.New("nothing to checkout")

// ErrRolledBack marks failures where the compensating delete already ran and
// the cart is safe to retry.
var ErrRolledBack = errors.New("checkout rolled back")

// Result reports a successful checkout.
type Result struct {
	OrdNo     int64
	Total     int64
	ItemCount int
}

// Saga runs the checkout procedure over the repository interfaces.
type Saga struct {
	carts   store.CartStore
	orders  store.OrderStore
	nowFunc func() time.Time
}

func New(carts store.CartStore, orders store.OrderStore) *Saga {
	return &Saga{
		carts:   carts,
		orders:  orders,
		nowFunc: time.Now,
	}
}

// Run executes the full procedure for one customer.
func (s *Saga) Run(ctx context.Context, custID string) (*Result, error) {
	lines, err := s.snapshot(ctx, custID)
	if err != nil {
		return nil, err
	}

	order := s.buildOrder(custID, lines)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.flagEntries(ctx, custID, order.OrdNo, lines); err != nil {
		return nil, err
	}

	if err := s.orders.Finalize(ctx, order.OrdNo); err != nil {
		// Cart entries are already flagged; the order stays PENDING rather
		// than being torn down under a paid cart.
		return nil, fmt.Errorf("finalize order %d: %w", order.OrdNo, err)
	}

	return &Result{
		OrdNo:     order.OrdNo,
		Total:     order.OrdAmount,
		ItemCount: len(order.Items),
	}, nil
}

// snapshot reads the unordered entries with their current product prices.
// Entries whose product vanished are dropped here and never reach the order;
// a cart with no survivors fails with ErrEmptyCart.
func (s *Saga) snapshot(ctx context.Context, custID string) ([]store.CartLine, error) {
	lines, err := s.carts.ListActive(ctx, custID)
	if err != nil {
		return nil, fmt.Errorf("snapshot cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return lines, nil
}

// buildOrder freezes prices into line items and totals them. The order number
// is the microsecond timestamp: unique enough per customer, sortable by
// creation.
func (s *Saga) buildOrder(custID string, lines []store.CartLine) store.Order {
	now := s.nowFunc()
	ordNo := now.UnixMicro()

	items := make([]store.OrderItem, 0, len(lines))
	var total int64
	for i, l := range lines {
		total += l.Price * int64(l.OrdQty)
		items = append(items, store.OrderItem{
			OrdItemNo: store.ItemNo(ordNo, i+1),
			OrdNo:     ordNo,
			CartSeqNo: l.CartSeqNo,
			ProdCD:    l.ProdCD,
			ProdName:  l.ProdName,
			ProdSize:  l.ProdSize,
			OrdQty:    l.OrdQty,
			Price:     l.Price,
		})
	}

	return store.Order{
		OrdNo:     ordNo,
		CustID:    custID,
		OrdDate:   now,
		OrdAmount: total,
		Status:    store.OrderPending,
		Items:     items,
	}
}

// flagEntries marks every originating cart entry ordered. Each write is
// conditional on the entry still being unordered, so a concurrent checkout
// can win at most once; the loser lands in rollback.
func (s *Saga) flagEntries(ctx context.Context, custID string, ordNo int64, lines []store.CartLine) error {
	flagged := make([]string, 0, len(lines))
	for _, l := range lines {
		if err := s.carts.MarkOrdered(ctx, custID, l.CartSeqNo, ordNo); err != nil {
			s.rollback(ctx, custID, ordNo, flagged)
			return fmt.Errorf("flag cart entry %s: %w", l.CartSeqNo, errors.Join(ErrRolledBack, err))
		}
		flagged = append(flagged, l.CartSeqNo)
	}
	return nil
}

// rollback is the compensating path: unmark whatever was flagged, then delete
// the order header and items. Best effort; residue is logged, not retried.
func (s *Saga) rollback(ctx context.Context, custID string, ordNo int64, flagged []string) {
	for _, seqNo := range flagged {
		if err := s.carts.Unmark(ctx, custID, seqNo); err != nil {
			log.Printf("checkout rollback: unmark %s: %v", seqNo, err)
		}
	}
	if err := s.orders.Delete(ctx, ordNo); err != nil {
		log.Printf("checkout rollback: delete order %d: %v", ordNo, err)
	}
}
