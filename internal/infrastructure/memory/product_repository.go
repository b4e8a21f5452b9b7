package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

type productRepository struct {
	store *Store
	inTx  bool
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Cost = copyDecimal(p.Cost)
	c.AverageCost = copyDecimal(p.AverageCost)
	c.ActivePrice = copyDecimal(p.ActivePrice)
	return &c
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func (r *productRepository) Create(_ context.Context, p *entity.Product) error {
	defer r.store.lock(r.inTx)()
	if err := r.store.takeFailure(OpProductCreate); err != nil {
		return err
	}
	if _, ok := r.store.data.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if p.Code != "" {
		for _, other := range r.store.data.products {
			if other.Code == p.Code {
				return domain.ErrDuplicate
			}
		}
	}
	r.store.data.products[p.ID] = copyProduct(p)
	return nil
}

func (r *productRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.store.lock(r.inTx)()
	p, ok := r.store.data.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

// GetForUpdate equivale a GetByID: el mutex de la transacción ya serializa el acceso.
func (r *productRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepository) UpdateStock(_ context.Context, p *entity.Product) error {
	defer r.store.lock(r.inTx)()
	if err := r.store.takeFailure(OpProductUpdateStock); err != nil {
		return err
	}
	cur, ok := r.store.data.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cur.Stock = p.Stock
	cur.Cost = copyDecimal(p.Cost)
	cur.AverageCost = copyDecimal(p.AverageCost)
	cur.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *productRepository) UpdateActivePrice(_ context.Context, productID string, amount decimal.Decimal) error {
	defer r.store.lock(r.inTx)()
	cur, ok := r.store.data.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cur.ActivePrice = &amount
	return nil
}

func (r *productRepository) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.store.lock(r.inTx)()
	all := make([]*entity.Product, 0, len(r.store.data.products))
	for _, p := range r.store.data.products {
		all = append(all, copyProduct(p))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ID < all[j].ID
		}
		return all[i].Name < all[j].Name
	})
	from, to := paginate(len(all), limit, offset)
	return all[from:to], nil
}
