package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seoulstyle/storefront/internal/checkout"
	"github.com/seoulstyle/storefront/internal/metrics"
	"github.com/seoulstyle/storefront/internal/session"
	"github.com/seoulstyle/storefront/internal/store"
	"github.com/seoulstyle/storefront/internal/validation"
)

// RegisterCartRoutes wires cart management and checkout.
func RegisterCartRoutes(r *gin.Engine, cfg Config) {
	v := validation.New()
	saga := checkout.New(cfg.Stores.Carts, cfg.Stores.Orders)

	r.GET("/cart", cfg.Sessions.RequirePage(), func(c *gin.Context) {
		sess, _ := session.FromContext(c)
		c.HTML(http.StatusOK, "cart.html", gin.H{"Name": sess.DisplayName})
	})

	api := r.Group("/cart", cfg.Sessions.RequireAPI())

	api.POST("/add", func(c *gin.Context) {
		sess, _ := session.FromContext(c)

		var req validation.AddCartRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		_, err := cfg.Stores.Products.Get(c.Request.Context(), req.Pcd)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found", "success": false})
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}

		entry := store.CartEntry{
			CartSeqNo: uuid.NewString(),
			CustID:    sess.CustomerID,
			ProdCD:    req.Pcd,
			ProdSize:  req.Size,
			OrdQty:    req.Qty,
			CreatedAt: time.Now().UTC(),
		}
		if err := cfg.Stores.Carts.Add(c.Request.Context(), entry); err != nil {
			serverError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "장바구니에 담았습니다.",
			"success": true,
			"cartId":  entry.CartSeqNo,
		})
	})

	api.GET("/api/items", func(c *gin.Context) {
		sess, _ := session.FromContext(c)

		lines, err := cfg.Stores.Carts.ListActive(c.Request.Context(), sess.CustomerID)
		if err != nil {
			serverError(c, err)
			return
		}

		var total int64
		for _, l := range lines {
			total += l.Subtotal()
		}
		c.JSON(http.StatusOK, gin.H{
			"items": lines,
			"total": total,
			"count": len(lines),
		})
	})

	api.PUT("/:id", func(c *gin.Context) {
		sess, _ := session.FromContext(c)

		var req validation.UpdateCartRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		err := cfg.Stores.Carts.Update(c.Request.Context(), sess.CustomerID, c.Param("id"), req.Size, req.Quantity)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found", "success": false})
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "장바구니를 수정했습니다.", "success": true})
	})

	api.DELETE("/:id", func(c *gin.Context) {
		sess, _ := session.FromContext(c)

		err := cfg.Stores.Carts.Remove(c.Request.Context(), sess.CustomerID, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found", "success": false})
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "장바구니에서 삭제했습니다.", "success": true})
	})

	api.POST("/pay", func(c *gin.Context) {
		sess, _ := session.FromContext(c)
		ctx := c.Request.Context()

		res, err := saga.Run(ctx, sess.CustomerID)
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "주문할 상품이 없습니다.", "success": false})
			return
		}
		if errors.Is(err, checkout.ErrRolledBack) {
			cfg.Metrics.Count(ctx, metrics.CheckoutRolledBack)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "결제에 실패했습니다. 다시 시도해 주세요.",
				"success": false,
			})
			return
		}
		if err != nil {
			cfg.Metrics.Count(ctx, metrics.CheckoutFailed)
			serverError(c, err)
			return
		}

		cfg.Metrics.Count(ctx, metrics.CheckoutCompleted)
		c.JSON(http.StatusOK, gin.H{
			"message":     "결제가 완료되었습니다.",
			"orderNumber": res.OrdNo,
			"totalAmount": res.Total,
			"success":     true,
		})
	})
}
