package repository

import (
	"context"
	"database/sql"
	"strings"
)

// ProductFilters narrows a listing. Zero values mean no restriction.
type ProductFilters struct {
	CategoryID string
	Search     string
}

// ProductRepo handles products.
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Upsert(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO products(id, name, category_id, price, rating, tags, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 category_id=excluded.category_id,
	 price=excluded.price,
	 rating=excluded.rating,
	 tags=excluded.tags,
	 updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.Name, p.CategoryID, p.Price, p.Rating, strings.Join(p.Tags, ","))
	return err
}

// List returns products in insertion order, which is the grid's default order.
func (r *ProductRepo) List(ctx context.Context, f ProductFilters) ([]Product, error) {
	var where []string
	var args []interface{}

	if f.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Search != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := "SELECT id, name, category_id, price, rating, tags, created_at, updated_at FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, category_id, price, rating, tags, created_at, updated_at FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// scanProduct handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner) (Product, error) {
	var p Product
	var category sql.NullString
	var rating sql.NullFloat64
	var tags string
	if err := row.Scan(&p.ID, &p.Name, &category, &p.Price, &rating, &tags, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	if category.Valid {
		p.CategoryID = &category.String
	}
	if rating.Valid {
		p.Rating = &rating.Float64
	}
	if tags != "" {
		p.Tags = strings.Split(tags, ",")
	}
	return p, nil
}
