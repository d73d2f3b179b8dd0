package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seoulstyle/storefront/internal/session"
	"github.com/seoulstyle/storefront/internal/store"
	"github.com/seoulstyle/storefront/internal/validation"
)

// RegisterMypageRoutes wires the profile page, order history and ratings.
func RegisterMypageRoutes(r *gin.Engine, cfg Config) {
	v := validation.New()

	r.GET("/mypage", cfg.Sessions.RequirePage(), func(c *gin.Context) {
		sess, _ := session.FromContext(c)
		c.HTML(http.StatusOK, "mypage.html", gin.H{"Name": sess.DisplayName})
	})

	api := r.Group("/mypage", cfg.Sessions.RequireAPI())

	api.GET("/api/profile", func(c *gin.Context) {
		sess, _ := session.FromContext(c)

		cust, err := cfg.Stores.Customers.Get(c.Request.Context(), sess.CustomerID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found", "success": false})
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cust": cust, "success": true})
	})

	api.GET("/api/orders", func(c *gin.Context) {
		sess, _ := session.FromContext(c)

		orders, err := cfg.Stores.Orders.ListByCustomer(c.Request.Context(), sess.CustomerID)
		if err != nil {
			serverError(c, err)
			return
		}

		var totalItems int
		var totalAmount int64
		for _, o := range orders {
			totalItems += len(o.Items)
			totalAmount += o.OrdAmount
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":      orders,
			"totalOrders": len(orders),
			"totalItems":  totalItems,
			"totalAmount": totalAmount,
		})
	})

	api.POST("/rating", func(c *gin.Context) {
		sess, _ := session.FromContext(c)
		ctx := c.Request.Context()

		var req validation.RatingRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		item, err := findOwnItem(ctx, cfg.Stores.Orders, sess.CustomerID, req.OrdItemNo)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order item not found", "success": false})
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}

		_, err = cfg.Stores.Reviews.Upsert(ctx, store.Review{
			CustID:      sess.CustomerID,
			CustName:    sess.DisplayName,
			ProdCD:      req.ProdCD,
			OrdNo:       item.OrdNo,
			OrdItemNo:   item.OrdItemNo,
			EvalScore:   req.EvalScore,
			EvalComment: req.EvalComment,
		})
		if err != nil {
			serverError(c, err)
			return
		}
		if err := cfg.Stores.Orders.SetReviewWritten(ctx, item.OrdItemNo, true); err != nil {
			serverError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "리뷰가 등록되었습니다.", "success": true})
	})

	api.DELETE("/rating/:eval_seq_no", func(c *gin.Context) {
		sess, _ := session.FromContext(c)
		ctx := c.Request.Context()

		deleted, err := cfg.Stores.Reviews.Delete(ctx, c.Param("eval_seq_no"), sess.CustomerID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found", "success": false})
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}
		if err := cfg.Stores.Orders.SetReviewWritten(ctx, deleted.OrdItemNo, false); err != nil {
			serverError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "리뷰가 삭제되었습니다.", "success": true})
	})
}

// findOwnItem resolves a line item only within the customer's own orders, so
// one customer cannot rate another's purchase.
func findOwnItem(ctx context.Context, orders store.OrderStore, custID, ordItemNo string) (*store.OrderItem, error) {
	item, err := orders.GetItem(ctx, ordItemNo)
	if err != nil {
		return nil, err
	}
	owned, err := orders.ListByCustomer(ctx, custID)
	if err != nil {
		return nil, err
	}
	for _, o := range owned {
		if o.OrdNo == item.OrdNo {
			return item, nil
		}
	}
	return nil, store.ErrNotFound
}
