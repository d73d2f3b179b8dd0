// Package store defines the storefront's domain records and the per-entity
// repository interfaces both storage backends implement.
package store

import (
	"context"
	"errors"
)

// Sentinel errors shared by every backend. Handlers compare with errors.Is.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("record already exists")
	ErrAlreadyOrdered = errors.New("cart entry already ordered")
)

// CustomerStore holds identity, credentials and consent flags.
type CustomerStore interface {
	// Create inserts a new customer. Returns ErrDuplicate when the id is taken.
	Create(ctx context.Context, c Customer) error
	// Get returns ErrNotFound when no customer has this id.
	Get(ctx context.Context, custID string) (*Customer, error)
}

// ProductStore is the static catalog. Products are immutable at request time;
// Put exists for seeding only.
type ProductStore interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, prodCD string) (*Product, error)
	Put(ctx context.Context, p Product) error
}

// CartStore manages a customer's pending cart entries.
type CartStore interface {
	// ListActive returns the customer's unordered entries joined with product
	// name, price and image. Entries whose product no longer exists are omitted.
	ListActive(ctx context.Context, custID string) ([]CartLine, error)
	Add(ctx context.Context, e CartEntry) error
	// Update applies a partial update to an unordered entry. nil fields are
	// left untouched. Quantity is clamped to [1,10] before storage.
	Update(ctx context.Context, custID, seqNo string, size *string, qty *int) error
	// Remove hard-deletes an entry. A second delete returns ErrNotFound.
	Remove(ctx context.Context, custID, seqNo string) error
	// MarkOrdered flips ord_yn false->true and links the order number. The
	// write is conditional on the entry still being unordered; a concurrent
	// checkout that got there first surfaces as ErrAlreadyOrdered.
	MarkOrdered(ctx context.Context, custID, seqNo string, ordNo int64) error
	// Unmark reverts MarkOrdered. Compensating path only.
	Unmark(ctx context.Context, custID, seqNo string) error
}

// OrderStore is the order ledger: headers plus line items.
type OrderStore interface {
	// Create persists the order header and all line items with status PENDING.
	Create(ctx context.Context, o Order) error
	// Finalize promotes PENDING -> COMPLETED. Conditional: any other current
	// status fails the write.
	Finalize(ctx context.Context, ordNo int64) error
	// Delete removes the header and every line item. Compensating path only.
	Delete(ctx context.Context, ordNo int64) error
	// ListByCustomer returns orders newest first, items included.
	ListByCustomer(ctx context.Context, custID string) ([]Order, error)
	// GetItem returns ErrNotFound when the line item does not exist.
	GetItem(ctx context.Context, ordItemNo string) (*OrderItem, error)
	SetReviewWritten(ctx context.Context, ordItemNo string, written bool) error
}

// ReviewStore holds at most one review per (customer, order line item) pair.
type ReviewStore interface {
	// Upsert inserts, or overwrites score/comment when the pair already has a
	// review. Returns the stored review's sequence number.
	Upsert(ctx context.Context, r Review) (string, error)
	// Delete removes the review if custID owns it; ErrNotFound otherwise.
	// Returns the deleted review so the caller can clear the line item flag.
	Delete(ctx context.Context, evalSeqNo, custID string) (*Review, error)
	ListByProduct(ctx context.Context, prodCD string) ([]Review, error)
}

// Stores bundles one implementation of every repository, wired at startup.
type Stores struct {
	Customers CustomerStore
	Products  ProductStore
	Carts     CartStore
	Orders    OrderStore
	Reviews   ReviewStore
}
