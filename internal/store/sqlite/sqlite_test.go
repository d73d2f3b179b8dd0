package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/seoulstyle/storefront/internal/store"
)

func openTestStores(t *testing.T) store.Stores {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storefront.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return db.Stores()
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	c := store.Customer{
		CustID:       "a@b.com",
		CustPwd:      "hash",
		CustName:     "김철수",
		Phone:        "010-1234-5678",
		AgreeTerms:   true,
		AgreePrivacy: true,
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.Customers.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Customers.Create(ctx, c); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := s.Customers.Get(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustName != "김철수" || !got.AgreeTerms || got.AgreeMarketing {
		t.Fatalf("unexpected customer: %+v", got)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) {
		t.Fatalf("created_at mismatch: %v != %v", got.CreatedAt, c.CreatedAt)
	}

	if _, err := s.Customers.Get(ctx, "missing@b.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductUpsertAndList(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	p := store.Product{ProdCD: "P001", ProdName: "linen shirt", Price: 10000, ProdType: "top"}
	if err := s.Products.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}
	p.Price = 12000
	if err := s.Products.Put(ctx, p); err != nil {
		t.Fatalf("second put: %v", err)
	}

	products, err := s.Products.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 || products[0].Price != 12000 {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestCartJoinAndConditionalFlag(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	if err := s.Products.Put(ctx, store.Product{ProdCD: "P001", ProdName: "linen shirt", Price: 10000}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	entry := store.CartEntry{
		CartSeqNo: "c1", CustID: "a@b.com", ProdCD: "P001", ProdSize: "M", OrdQty: 2,
		CreatedAt: time.Now(),
	}
	if err := s.Carts.Add(ctx, entry); err != nil {
		t.Fatalf("add: %v", err)
	}
	// entry referencing a vanished product drops out of the join
	if err := s.Carts.Add(ctx, store.CartEntry{
		CartSeqNo: "c2", CustID: "a@b.com", ProdCD: "GONE", ProdSize: "L", OrdQty: 1,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := s.Carts.ListActive(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 || lines[0].Subtotal() != 20000 {
		t.Fatalf("unexpected lines: %+v", lines)
	}

	if err := s.Carts.MarkOrdered(ctx, "a@b.com", "c1", 1001); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := s.Carts.MarkOrdered(ctx, "a@b.com", "c1", 1002); !errors.Is(err, store.ErrAlreadyOrdered) {
		t.Fatalf("expected ErrAlreadyOrdered, got %v", err)
	}

	lines, _ = s.Carts.ListActive(ctx, "a@b.com")
	if len(lines) != 0 {
		t.Fatalf("ordered entry still listed: %+v", lines)
	}

	if err := s.Carts.Unmark(ctx, "a@b.com", "c1"); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	lines, _ = s.Carts.ListActive(ctx, "a@b.com")
	if len(lines) != 1 {
		t.Fatalf("expected entry back after unmark, got %d", len(lines))
	}
}

func TestCartUpdateClampsAndRemoveTwice(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	if err := s.Products.Put(ctx, store.Product{ProdCD: "P001", ProdName: "shirt", Price: 10000}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Carts.Add(ctx, store.CartEntry{
		CartSeqNo: "c1", CustID: "a@b.com", ProdCD: "P001", ProdSize: "M", OrdQty: 1,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	qty := 0
	size := "XL"
	if err := s.Carts.Update(ctx, "a@b.com", "c1", &size, &qty); err != nil {
		t.Fatalf("update: %v", err)
	}
	lines, _ := s.Carts.ListActive(ctx, "a@b.com")
	if lines[0].OrdQty != 1 || lines[0].ProdSize != "XL" {
		t.Fatalf("expected clamp to 1 and size XL, got %+v", lines[0])
	}

	if err := s.Carts.Remove(ctx, "a@b.com", "c1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Carts.Remove(ctx, "a@b.com", "c1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestOrderCreateFinalizeDelete(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	o := store.Order{
		OrdNo:     1001,
		CustID:    "a@b.com",
		OrdAmount: 25000,
		Status:    store.OrderPending,
		Items: []store.OrderItem{
			{OrdItemNo: store.ItemNo(1001, 1), OrdNo: 1001, CartSeqNo: "c1", ProdCD: "P001", ProdName: "shirt", ProdSize: "M", OrdQty: 2, Price: 10000},
			{OrdItemNo: store.ItemNo(1001, 2), OrdNo: 1001, CartSeqNo: "c2", ProdCD: "P002", ProdName: "scarf", ProdSize: "L", OrdQty: 1, Price: 5000},
		},
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Orders.Finalize(ctx, 1001); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := s.Orders.Finalize(ctx, 1001); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double finalize, got %v", err)
	}

	orders, err := s.Orders.ListByCustomer(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 || len(orders[0].Items) != 2 || orders[0].Status != store.OrderCompleted {
		t.Fatalf("unexpected orders: %+v", orders)
	}

	var sum int64
	for _, it := range orders[0].Items {
		sum += it.Price * int64(it.OrdQty)
	}
	if sum != orders[0].OrdAmount {
		t.Fatalf("amount %d != item sum %d", orders[0].OrdAmount, sum)
	}

	if err := s.Orders.Delete(ctx, 1001); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Orders.GetItem(ctx, store.ItemNo(1001, 1)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected items gone, got %v", err)
	}
}

func TestReviewUpsertDeleteAndFlag(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	o := store.Order{
		OrdNo: 1001, CustID: "a@b.com", OrdAmount: 10000, Status: store.OrderCompleted,
		Items: []store.OrderItem{
			{OrdItemNo: store.ItemNo(1001, 1), OrdNo: 1001, ProdCD: "P001", ProdName: "shirt", ProdSize: "M", OrdQty: 1, Price: 10000},
		},
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		t.Fatalf("create order: %v", err)
	}

	r := store.Review{
		CustID: "a@b.com", CustName: "김철수", ProdCD: "P001",
		OrdNo: 1001, OrdItemNo: store.ItemNo(1001, 1), EvalScore: 3, EvalComment: "무난",
	}
	seq1, err := s.Reviews.Upsert(ctx, r)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Orders.SetReviewWritten(ctx, r.OrdItemNo, true); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	r.EvalScore = 5
	seq2, err := s.Reviews.Upsert(ctx, r)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if seq1 != seq2 {
		t.Fatalf("upsert changed sequence number: %s -> %s", seq1, seq2)
	}

	reviews, err := s.Reviews.ListByProduct(ctx, "P001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reviews) != 1 || reviews[0].EvalScore != 5 {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}

	if _, err := s.Reviews.Delete(ctx, seq1, "other@b.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	deleted, err := s.Reviews.Delete(ctx, seq1, "a@b.com")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Orders.SetReviewWritten(ctx, deleted.OrdItemNo, false); err != nil {
		t.Fatalf("clear flag: %v", err)
	}
	item, _ := s.Orders.GetItem(ctx, deleted.OrdItemNo)
	if item.ReviewWritten {
		t.Fatal("review_written flag not cleared")
	}

	if _, err := s.Reviews.Delete(ctx, seq1, "a@b.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
