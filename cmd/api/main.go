package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/seoulstyle/storefront/internal/aws"
	"github.com/seoulstyle/storefront/internal/config"
	"github.com/seoulstyle/storefront/internal/handlers"
	"github.com/seoulstyle/storefront/internal/metrics"
	"github.com/seoulstyle/storefront/internal/session"
	"github.com/seoulstyle/storefront/internal/store"
	"github.com/seoulstyle/storefront/internal/store/dynamo"
	"github.com/seoulstyle/storefront/internal/store/sqlite"
	"github.com/seoulstyle/storefront/internal/web"
)

func setupRouter(cfg handlers.Config) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.Static("/static", "./static")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/main")
	})

	handlers.RegisterRoutes(r, cfg)

	return r, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	stores, pub, err := openBackend(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to open storage backend: %v", err)
	}

	r, err := setupRouter(handlers.Config{
		Stores:   stores,
		Sessions: session.NewManager(cfg.SessionTTL),
		Metrics:  pub,
	})
	if err != nil {
		log.Fatalf("failed to set up router: %v", err)
	}

	if cfg.RunLocal {
		log.Printf("running local server on %s (backend=%s)", cfg.ListenAddr, cfg.Backend)
		if err := r.Run(cfg.ListenAddr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	adapter := ginadapter.New(r)
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}

// openBackend builds the repository bundle and the metrics publisher for the
// configured backend.
func openBackend(ctx context.Context, cfg config.Config) (store.Stores, metrics.Publisher, error) {
	if cfg.Backend == config.BackendSQLite {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return store.Stores{}, nil, err
		}
		return db.Stores(), metrics.Noop{}, nil
	}

	clients, err := aws.NewAWSClients(ctx)
	if err != nil {
		return store.Stores{}, nil, err
	}
	stores := dynamo.New(clients.DynamoDB, dynamo.Tables{
		Customers: cfg.CustomersTable,
		Products:  cfg.ProductsTable,
		Carts:     cfg.CartsTable,
		Orders:    cfg.OrdersTable,
		Reviews:   cfg.ReviewsTable,
	})

	var pub metrics.Publisher = metrics.Noop{}
	if cfg.MetricsEnabled {
		pub = metrics.NewCloudWatch(clients.CloudWatch)
	}
	return stores, pub, nil
}
