// Command seed loads the product catalog into the configured backend.
//
// Input is a JSON array of products:
//
//	[{"prod_cd":"P001","prod_name":"linen shirt","price":10000,
//	  "prod_type":"top","material":"linen","prod_img":"p001.jpg",
//	  "prod_intro":"..."}]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/seoulstyle/storefront/internal/aws"
	"github.com/seoulstyle/storefront/internal/config"
	"github.com/seoulstyle/storefront/internal/store"
	"github.com/seoulstyle/storefront/internal/store/dynamo"
	"github.com/seoulstyle/storefront/internal/store/sqlite"
)

func main() {
	file := flag.String("file", "products.json", "path to the product catalog JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read catalog: %v", err)
	}
	var products []store.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Fatalf("failed to parse catalog: %v", err)
	}

	ctx := context.Background()
	stores, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage backend: %v", err)
	}

	for _, p := range products {
		if err := stores.Products.Put(ctx, p); err != nil {
			log.Fatalf("failed to seed product %s: %v", p.ProdCD, err)
		}
	}
	log.Printf("seeded %d products into %s backend", len(products), cfg.Backend)
}

func openStores(ctx context.Context, cfg config.Config) (store.Stores, error) {
	if cfg.Backend == config.BackendSQLite {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return store.Stores{}, err
		}
		return db.Stores(), nil
	}

	clients, err := aws.NewAWSClients(ctx)
	if err != nil {
		return store.Stores{}, err
	}
	return dynamo.New(clients.DynamoDB, dynamo.Tables{
		Customers: cfg.CustomersTable,
		Products:  cfg.ProductsTable,
		Carts:     cfg.CartsTable,
		Orders:    cfg.OrdersTable,
		Reviews:   cfg.ReviewsTable,
	}), nil
}
