package repositories

import (
	"database/sql"
	"errors"

	"printstore/internal/models"
)

type CatalogRepository interface {
	CreateCategory(c *models.Category) error
	ListCategories() ([]*models.Category, error)
	GetCategory(id int) (*models.Category, error)
	DeleteCategory(id int) error
	CreateSubCategory(sc *models.SubCategory) error

	CreateProduct(p *models.Product) error
	// GetProduct returns the product with its material options, (nil, nil)
	// when absent.
	GetProduct(id int) (*models.Product, error)
	ListProducts(subCategoryID int, activeOnly bool) ([]*models.Product, error)
	UpdateProduct(p *models.Product) error
	DeleteProduct(id int) error
	AddMaterialOption(o *models.MaterialOption) error
	GetMaterialOption(id int) (*models.MaterialOption, error)
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

func (r *catalogRepository) CreateCategory(c *models.Category) error {
	const q = `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q, c.Name, c.Description).Scan(&c.ID, &c.CreatedAt)
}

func (r *catalogRepository) ListCategories() ([]*models.Category, error) {
	const q = `
		SELECT id, name, COALESCE(description, ''), created_at
		FROM categories
		ORDER BY name
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range out {
		subs, err := r.listSubCategories(c.ID)
		if err != nil {
			return nil, err
		}
		c.SubCategories = subs
	}
	return out, nil
}

func (r *catalogRepository) GetCategory(id int) (*models.Category, error) {
	const q = `
		SELECT id, name, COALESCE(description, ''), created_at
		FROM categories
		WHERE id = $1
	`
	c := &models.Category{}
	err := r.DB.QueryRow(q, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	subs, err := r.listSubCategories(c.ID)
	if err != nil {
		return nil, err
	}
	c.SubCategories = subs
	return c, nil
}

func (r *catalogRepository) DeleteCategory(id int) error {
	const q = `DELETE FROM categories WHERE id = $1`
	_, err := r.DB.Exec(q, id)
	return err
}

func (r *catalogRepository) CreateSubCategory(sc *models.SubCategory) error {
	const q = `
		INSERT INTO sub_categories (category_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q, sc.CategoryID, sc.Name).Scan(&sc.ID, &sc.CreatedAt)
}

func (r *catalogRepository) listSubCategories(categoryID int) ([]models.SubCategory, error) {
	const q = `
		SELECT id, category_id, name, created_at
		FROM sub_categories
		WHERE category_id = $1
		ORDER BY name
	`
	rows, err := r.DB.Query(q, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SubCategory
	for rows.Next() {
		var sc models.SubCategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *catalogRepository) CreateProduct(p *models.Product) error {
	const q = `
		INSERT INTO products (sub_category_id, name, description, price, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q, p.SubCategoryID, p.Name, p.Description, p.Price, p.Active).Scan(&p.ID, &p.CreatedAt)
}

func (r *catalogRepository) GetProduct(id int) (*models.Product, error) {
	const q = `
		SELECT id, sub_category_id, name, COALESCE(description, ''), price, active, created_at
		FROM products
		WHERE id = $1
	`
	p := &models.Product{}
	err := r.DB.QueryRow(q, id).Scan(&p.ID, &p.SubCategoryID, &p.Name, &p.Description, &p.Price, &p.Active, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	opts, err := r.listMaterialOptions(p.ID)
	if err != nil {
		return nil, err
	}
	p.MaterialOptions = opts
	return p, nil
}

func (r *catalogRepository) ListProducts(subCategoryID int, activeOnly bool) ([]*models.Product, error) {
	q := `
		SELECT id, sub_category_id, name, COALESCE(description, ''), price, active, created_at
		FROM products
		WHERE 1=1
	`
	args := []any{}
	if subCategoryID > 0 {
		args = append(args, subCategoryID)
		q += ` AND sub_category_id = $1`
	}
	if activeOnly {
		q += ` AND active = TRUE`
	}
	q += ` ORDER BY name`

	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.SubCategoryID, &p.Name, &p.Description, &p.Price, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *catalogRepository) UpdateProduct(p *models.Product) error {
	const q = `
		UPDATE products
		SET sub_category_id = $1, name = $2, description = $3, price = $4, active = $5
		WHERE id = $6
	`
	_, err := r.DB.Exec(q, p.SubCategoryID, p.Name, p.Description, p.Price, p.Active, p.ID)
	return err
}

func (r *catalogRepository) DeleteProduct(id int) error {
	const q = `DELETE FROM products WHERE id = $1`
	_, err := r.DB.Exec(q, id)
	return err
}

func (r *catalogRepository) AddMaterialOption(o *models.MaterialOption) error {
	const q = `
		INSERT INTO material_options (product_id, name, surcharge)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRow(q, o.ProductID, o.Name, o.Surcharge).Scan(&o.ID)
}

func (r *catalogRepository) GetMaterialOption(id int) (*models.MaterialOption, error) {
	const q = `
		SELECT id, product_id, name, surcharge
		FROM material_options
		WHERE id = $1
	`
	o := &models.MaterialOption{}
	err := r.DB.QueryRow(q, id).Scan(&o.ID, &o.ProductID, &o.Name, &o.Surcharge)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *catalogRepository) listMaterialOptions(productID int) ([]models.MaterialOption, error) {
	const q = `
		SELECT id, product_id, name, surcharge
		FROM material_options
		WHERE product_id = $1
		ORDER BY name
	`
	rows, err := r.DB.Query(q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MaterialOption
	for rows.Next() {
		var o models.MaterialOption
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Name, &o.Surcharge); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
