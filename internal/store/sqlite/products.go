package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seoulstyle/storefront/internal/store"
)

// Products implements store.ProductStore.
type Products struct {
	db *sql.DB
}

func (s *Products) List(ctx context.Context) ([]store.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT prod_cd, prod_name, price, prod_type, material, prod_img, prod_intro
		FROM products ORDER BY prod_cd`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []store.Product
	for rows.Next() {
		var p store.Product
		if err := rows.Scan(&p.ProdCD, &p.ProdName, &p.Price, &p.ProdType,
			&p.Material, &p.ProdImg, &p.ProdIntro); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Products) Get(ctx context.Context, prodCD string) (*store.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT prod_cd, prod_name, price, prod_type, material, prod_img, prod_intro
		FROM products WHERE prod_cd = ?`, prodCD)

	var p store.Product
	err := row.Scan(&p.ProdCD, &p.ProdName, &p.Price, &p.ProdType,
		&p.Material, &p.ProdImg, &p.ProdIntro)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (s *Products) Put(ctx context.Context, p store.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (prod_cd, prod_name, price, prod_type, material, prod_img, prod_intro)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(prod_cd) DO UPDATE SET
			prod_name = excluded.prod_name,
			price = excluded.price,
			prod_type = excluded.prod_type,
			material = excluded.material,
			prod_img = excluded.prod_img,
			prod_intro = excluded.prod_intro`,
		p.ProdCD, p.ProdName, p.Price, p.ProdType, p.Material, p.ProdImg, p.ProdIntro)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}
