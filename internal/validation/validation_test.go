package validation

import "testing"

func TestRegisterRequest_Valid(t *testing.T) {
	v := New()

	req := RegisterRequest{
		UserID:       "a@b.com",
		Pwd:          "secret1",
		Pwd2:         "secret1",
		Name:         "김철수",
		Phone:        "010-1234-5678",
		AgreeTerms:   "on",
		AgreePrivacy: "on",
	}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestRegisterRequest_PasswordMismatch(t *testing.T) {
	v := New()

	req := RegisterRequest{
		UserID:       "a@b.com",
		Pwd:          "secret1",
		Pwd2:         "secret2",
		Name:         "김철수",
		AgreeTerms:   "on",
		AgreePrivacy: "on",
	}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for password mismatch, got nil")
	}
}

func TestRegisterRequest_ConsentRequired(t *testing.T) {
	v := New()

	req := RegisterRequest{
		UserID:     "a@b.com",
		Pwd:        "secret1",
		Pwd2:       "secret1",
		Name:       "김철수",
		AgreeTerms: "on",
		// privacy consent missing
	}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for missing privacy consent, got nil")
	}
}

func TestAddCartRequest_SizeAndQuantityBounds(t *testing.T) {
	v := New()

	good := AddCartRequest{Pcd: "P001", Size: "XL", Qty: 10}
	if err := v.Struct(good); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}

	badSize := AddCartRequest{Pcd: "P001", Size: "XS", Qty: 1}
	if err := v.Struct(badSize); err == nil {
		t.Fatal("expected validation error for size XS, got nil")
	}

	badQty := AddCartRequest{Pcd: "P001", Size: "M", Qty: 11}
	if err := v.Struct(badQty); err == nil {
		t.Fatal("expected validation error for qty 11, got nil")
	}
}

func TestRatingRequest_ScoreBounds(t *testing.T) {
	v := New()

	for _, score := range []int{1, 3, 5} {
		req := RatingRequest{ProdCD: "P001", OrdItemNo: "1-1", EvalScore: score}
		if err := v.Struct(req); err != nil {
			t.Fatalf("score %d should be valid: %v", score, err)
		}
	}
	for _, score := range []int{0, 6, -1} {
		req := RatingRequest{ProdCD: "P001", OrdItemNo: "1-1", EvalScore: score}
		if err := v.Struct(req); err == nil {
			t.Fatalf("score %d should be rejected", score)
		}
	}
}
