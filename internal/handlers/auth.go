package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/seoulstyle/storefront/internal/session"
	"github.com/seoulstyle/storefront/internal/store"
	"github.com/seoulstyle/storefront/internal/validation"
)

// RegisterAuthRoutes wires login, registration and logout.
func RegisterAuthRoutes(r *gin.Engine, cfg Config) {
	v := validation.New()

	r.GET("/auth/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{})
	})

	r.POST("/auth/login_process", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			alertRedirect(c, "아이디와 비밀번호를 입력해 주세요.", "/auth/login")
			return
		}

		cust, err := cfg.Stores.Customers.Get(c.Request.Context(), req.UserID)
		if errors.Is(err, store.ErrNotFound) {
			alertRedirect(c, "아이디 또는 비밀번호가 올바르지 않습니다.", "/auth/login")
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(cust.CustPwd), []byte(req.Pwd)) != nil {
			alertRedirect(c, "아이디 또는 비밀번호가 올바르지 않습니다.", "/auth/login")
			return
		}

		token := cfg.Sessions.Create(cust.CustID, cust.CustName)
		c.SetCookie(session.CookieName, token, 0, "/", "", false, true)
		c.Redirect(http.StatusFound, "/main")
	})

	r.GET("/auth/register", func(c *gin.Context) {
		c.HTML(http.StatusOK, "register.html", gin.H{})
	})

	r.POST("/auth/register_process", func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := c.ShouldBind(&req); err != nil {
			alertRedirect(c, "입력값을 확인해 주세요.", "/auth/register")
			return
		}
		if err := v.Struct(req); err != nil {
			alertRedirect(c, "입력값을 확인해 주세요.", "/auth/register")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Pwd), bcrypt.DefaultCost)
		if err != nil {
			serverError(c, err)
			return
		}

		cust := store.Customer{
			CustID:         req.UserID,
			CustPwd:        string(hash),
			CustName:       req.Name,
			Phone:          req.Phone,
			AgreeTerms:     validation.Agreed(req.AgreeTerms),
			AgreePrivacy:   validation.Agreed(req.AgreePrivacy),
			AgreeMarketing: validation.Agreed(req.AgreeMarketing),
			CreatedAt:      time.Now().UTC(),
		}
		err = cfg.Stores.Customers.Create(c.Request.Context(), cust)
		if errors.Is(err, store.ErrDuplicate) {
			alertRedirect(c, "이미 사용 중인 아이디입니다.", "/auth/register")
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}

		alertRedirect(c, "회원가입이 완료되었습니다. 로그인해 주세요.", "/auth/login")
	})

	r.GET("/auth/logout", func(c *gin.Context) {
		if token, err := c.Cookie(session.CookieName); err == nil {
			cfg.Sessions.Destroy(token)
		}
		c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/auth/login")
	})
}
