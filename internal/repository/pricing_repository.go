package repository

import (
	"context"
	"database/sql"

	"github.com/harborline/charter-booking/internal/model"
)

// PricingRepo loads and stores the per-tenant numbers the cost calculator
// looks up.  A missing row is not an error: the calculator treats absent
// configuration as zero cost, so GetByCompany returns a zero-valued config
// in that case.
type PricingRepo struct{ DB *sql.DB }

func NewPricingRepo(db *sql.DB) *PricingRepo { return &PricingRepo{DB: db} }

// GetByCompany fetches the tenant's pricing config, or a zero config when
// none has been saved yet.
func (r *PricingRepo) GetByCompany(ctx context.Context, companyID uint64) (model.PricingConfig, error) {
	var p model.PricingConfig
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, company_id, fuel_price_per_litre, drinks_per_person, food_per_person, created_at, updated_at
		 FROM pricing_configs WHERE company_id=? LIMIT 1`, companyID).
		Scan(&p.ID, &p.CompanyID, &p.FuelPricePerL, &p.DrinksPerPerson, &p.FoodPerPerson, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.PricingConfig{CompanyID: companyID}, nil
	}
	return p, err
}

// Upsert writes the tenant's pricing config, creating the row on first use.
func (r *PricingRepo) Upsert(ctx context.Context, p *model.PricingConfig) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO pricing_configs (company_id, fuel_price_per_litre, drinks_per_person, food_per_person)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE fuel_price_per_litre=VALUES(fuel_price_per_litre),
			drinks_per_person=VALUES(drinks_per_person), food_per_person=VALUES(food_per_person)`,
		p.CompanyID, p.FuelPricePerL, p.DrinksPerPerson, p.FoodPerPerson)
	return err
}
