package store

import "time"

// Order statuses. A crash between cart flagging and Finalize leaves an order
// PENDING with no automatic reconciliation; see the checkout package.
const (
	OrderPending   = "PENDING"
	OrderCompleted = "COMPLETED"
)

// Sizes accepted for cart entries and order items.
var Sizes = []string{"S", "M", "L", "XL", "XXL"}

// ValidSize reports whether s is one of the accepted size codes.
func ValidSize(s string) bool {
	for _, v := range Sizes {
		if s == v {
			return true
		}
	}
	return false
}

// Customer mirrors the Customers table/collection. CustID is the login email.
type Customer struct {
	CustID         string    `dynamodbav:"cust_id" json:"cust_id"`
	CustPwd        string    `dynamodbav:"cust_pwd" json:"-"`
	CustName       string    `dynamodbav:"cust_name" json:"cust_name"`
	Phone          string    `dynamodbav:"phone" json:"phone"`
	AgreeTerms     bool      `dynamodbav:"agree_terms" json:"agree_terms"`
	AgreePrivacy   bool      `dynamodbav:"agree_privacy" json:"agree_privacy"`
	AgreeMarketing bool      `dynamodbav:"agree_marketing" json:"agree_marketing"`
	CreatedAt      time.Time `dynamodbav:"created_at" json:"created_at"`
}

// Product is catalog reference data. Price is whole currency units.
type Product struct {
	ProdCD    string `dynamodbav:"prod_cd" json:"prod_cd"`
	ProdName  string `dynamodbav:"prod_name" json:"prod_name"`
	Price     int64  `dynamodbav:"price" json:"price"`
	ProdType  string `dynamodbav:"prod_type" json:"prod_type"`
	Material  string `dynamodbav:"material" json:"material"`
	ProdImg   string `dynamodbav:"prod_img" json:"prod_img"`
	ProdIntro string `dynamodbav:"prod_intro,omitempty" json:"prod_intro,omitempty"`
}

// CartEntry is one pending (product, size, quantity) line for a customer.
// Duplicates of the same (product, size) are allowed and stay separate lines.
type CartEntry struct {
	CartSeqNo string    `dynamodbav:"cart_seq_no" json:"cart_seq_no"`
	CustID    string    `dynamodbav:"cust_id" json:"cust_id"`
	ProdCD    string    `dynamodbav:"prod_cd" json:"prod_cd"`
	ProdSize  string    `dynamodbav:"prod_size" json:"prod_size"`
	OrdQty    int       `dynamodbav:"ord_qty" json:"ord_qty"`
	Ordered   bool      `dynamodbav:"ord_yn" json:"ord_yn"`
	OrdNo     int64     `dynamodbav:"ord_no,omitempty" json:"ord_no,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`
}

// CartLine is a cart entry enriched with the product fields the cart page shows.
type CartLine struct {
	CartEntry
	ProdName string `json:"prod_name"`
	Price    int64  `json:"price"`
	ProdImg  string `json:"prod_img"`
}

// Subtotal is the line's current display price. Frozen prices exist only on
// order items; a cart line always reflects the live product.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.OrdQty)
}

// Order is one ledger entry. OrdAmount equals the sum of item price*qty at
// creation time and is never recomputed.
type Order struct {
	OrdNo     int64       `dynamodbav:"ord_no" json:"ord_no"`
	CustID    string      `dynamodbav:"cust_id" json:"cust_id"`
	OrdDate   time.Time   `dynamodbav:"ord_date" json:"ord_date"`
	OrdAmount int64       `dynamodbav:"ord_amount" json:"ord_amount"`
	Status    string      `dynamodbav:"ord_status" json:"ord_status"`
	Items     []OrderItem `dynamodbav:"items" json:"items"`
}

// OrderItem snapshots one cart entry at purchase time. Price is frozen; later
// catalog changes never touch it. ProdName is denormalized for display.
type OrderItem struct {
	OrdItemNo     string `dynamodbav:"ord_item_no" json:"ord_item_no"`
	OrdNo         int64  `dynamodbav:"ord_no" json:"ord_no"`
	CartSeqNo     string `dynamodbav:"cart_seq_no" json:"cart_seq_no"`
	ProdCD        string `dynamodbav:"prod_cd" json:"prod_cd"`
	ProdName      string `dynamodbav:"prod_name" json:"prod_name"`
	ProdSize      string `dynamodbav:"prod_size" json:"prod_size"`
	OrdQty        int    `dynamodbav:"ord_qty" json:"ord_qty"`
	Price         int64  `dynamodbav:"price" json:"price"`
	ReviewWritten bool   `dynamodbav:"review_written" json:"review_written"`
}

// Review is a score plus optional comment, at most one per (cust, line item).
type Review struct {
	EvalSeqNo   string    `dynamodbav:"eval_seq_no" json:"eval_seq_no"`
	CustID      string    `dynamodbav:"cust_id" json:"cust_id"`
	CustName    string    `dynamodbav:"cust_name" json:"cust_name"`
	ProdCD      string    `dynamodbav:"prod_cd" json:"prod_cd"`
	OrdNo       int64     `dynamodbav:"ord_no" json:"ord_no"`
	OrdItemNo   string    `dynamodbav:"ord_item_no" json:"ord_item_no"`
	EvalScore   int       `dynamodbav:"eval_score" json:"eval_score"`
	EvalComment string    `dynamodbav:"eval_comment,omitempty" json:"eval_comment,omitempty"`
	EvalDate    time.Time `dynamodbav:"eval_date" json:"eval_date"`
}
