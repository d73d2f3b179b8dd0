package validation

// LoginRequest is the payload for POST /auth/login_process.
type LoginRequest struct {
	UserID string `form:"userid" json:"userid" validate:"required,email"`
	Pwd    string `form:"pwd" json:"pwd" validate:"required"`
}

// RegisterRequest is the payload for POST /auth/register_process.
// Consent checkboxes arrive as "on" when ticked and are absent otherwise.
type RegisterRequest struct {
	UserID         string `form:"userid" json:"userid" validate:"required,email"`
	Pwd            string `form:"pwd" json:"pwd" validate:"required,min=4"`
	Pwd2           string `form:"pwd2" json:"pwd2" validate:"required"`
	Name           string `form:"name" json:"name" validate:"required"`
	Phone          string `form:"phone" json:"phone"`
	AgreeTerms     string `form:"agree-terms" json:"agree-terms"`
	AgreePrivacy   string `form:"agree-privacy" json:"agree-privacy"`
	AgreeMarketing string `form:"agree-marketing" json:"agree-marketing"`
}

// Agreed reports whether a consent checkbox value means yes.
func Agreed(v string) bool {
	return v == "on" || v == "true" || v == "Y"
}

// AddCartRequest is the payload for POST /cart/add.
type AddCartRequest struct {
	Pcd  string `json:"pcd" validate:"required"`
	Size string `json:"size" validate:"required,oneof=S M L XL XXL"`
	Qty  int    `json:"qty" validate:"required,min=1,max=10"`
}

// UpdateCartRequest is the payload for PUT /cart/:id. Both fields optional;
// an empty patch is accepted and changes nothing.
type UpdateCartRequest struct {
	Size     *string `json:"size,omitempty" validate:"omitempty,oneof=S M L XL XXL"`
	Quantity *int    `json:"quantity,omitempty" validate:"omitempty,min=1,max=10"`
}

// RatingRequest is the payload for POST /mypage/rating.
type RatingRequest struct {
	ProdCD      string `json:"prod_cd" validate:"required"`
	OrdItemNo   string `json:"ord_item_no" validate:"required"`
	EvalScore   int    `json:"eval_score" validate:"required,min=1,max=5"`
	EvalComment string `json:"eval_comment"`
}
