package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seoulstyle/storefront/internal/reviews"
	"github.com/seoulstyle/storefront/internal/session"
	"github.com/seoulstyle/storefront/internal/store"
)

// maskedReview is a review as the product page shows it.
type maskedReview struct {
	EvalSeqNo   string `json:"eval_seq_no"`
	Reviewer    string `json:"reviewer"`
	EvalScore   int    `json:"eval_score"`
	EvalComment string `json:"eval_comment"`
	EvalDate    string `json:"eval_date"`
}

// RegisterProductRoutes wires the catalog pages and API.
func RegisterProductRoutes(r *gin.Engine, cfg Config) {
	r.GET("/main", cfg.Sessions.Load(), func(c *gin.Context) {
		sess, _ := session.FromContext(c)
		c.HTML(http.StatusOK, "main.html", gin.H{
			"Name": sess.DisplayName,
		})
	})

	r.GET("/api/products", func(c *gin.Context) {
		products, err := cfg.Stores.Products.List(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	})

	r.GET("/prod/product/:prod_cd", cfg.Sessions.Load(), func(c *gin.Context) {
		ctx := c.Request.Context()
		prodCD := c.Param("prod_cd")

		product, err := cfg.Stores.Products.Get(ctx, prodCD)
		if errors.Is(err, store.ErrNotFound) {
			c.String(http.StatusNotFound, "product not found")
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}

		revs, err := cfg.Stores.Reviews.ListByProduct(ctx, prodCD)
		if err != nil {
			serverError(c, err)
			return
		}

		masked := make([]maskedReview, 0, len(revs))
		scores := make([]int, 0, len(revs))
		for _, rv := range revs {
			masked = append(masked, maskedReview{
				EvalSeqNo:   rv.EvalSeqNo,
				Reviewer:    reviews.MaskName(rv.CustName),
				EvalScore:   rv.EvalScore,
				EvalComment: rv.EvalComment,
				EvalDate:    rv.EvalDate.Format("2006-01-02"),
			})
			scores = append(scores, rv.EvalScore)
		}

		c.HTML(http.StatusOK, "product.html", gin.H{
			"Product":      product,
			"Reviews":      masked,
			"AverageScore": reviews.AverageScore(scores),
			"ReviewCount":  len(masked),
		})
	})
}
