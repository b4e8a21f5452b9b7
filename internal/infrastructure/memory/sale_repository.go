package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

type saleRepository struct {
	store *Store
	inTx  bool
}

func (r *saleRepository) Create(_ context.Context, s *entity.Sale) error {
	defer r.store.lock(r.inTx)()
	if err := r.store.takeFailure(OpSaleCreate); err != nil {
		return err
	}
	for _, existing := range r.store.data.sales {
		if existing.ID == s.ID {
			return domain.ErrDuplicate
		}
	}
	header := *s
	header.Items = nil
	header.Payments = nil
	r.store.data.sales = append(r.store.data.sales, &header)
	return nil
}

func (r *saleRepository) CreateItem(_ context.Context, item *entity.SaleItem) error {
	defer r.store.lock(r.inTx)()
	if err := r.store.takeFailure(OpSaleItemCreate); err != nil {
		return err
	}
	if r.findSale(item.SaleID) == nil {
		return domain.ErrConflict
	}
	c := *item
	r.store.data.items = append(r.store.data.items, &c)
	return nil
}

func (r *saleRepository) CreatePayment(_ context.Context, p *entity.Payment) error {
	defer r.store.lock(r.inTx)()
	if err := r.store.takeFailure(OpPaymentCreate); err != nil {
		return err
	}
	if r.findSale(p.SaleID) == nil {
		return domain.ErrConflict
	}
	c := *p
	r.store.data.payments = append(r.store.data.payments, &c)
	return nil
}

func (r *saleRepository) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.store.lock(r.inTx)()
	s := r.findSale(id)
	if s == nil {
		return nil, nil
	}
	return r.load(s), nil
}

func (r *saleRepository) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	defer r.store.lock(r.inTx)()
	out := make([]*entity.Sale, 0, len(r.store.data.sales))
	for i := len(r.store.data.sales) - 1; i >= 0; i-- {
		out = append(out, r.load(r.store.data.sales[i]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	from, to := paginate(len(out), limit, offset)
	return out[from:to], nil
}

func (r *saleRepository) findSale(id string) *entity.Sale {
	for _, s := range r.store.data.sales {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// load arma la venta con sus ítems y pagos en orden de inserción.
func (r *saleRepository) load(header *entity.Sale) *entity.Sale {
	s := *header
	s.Items = make([]*entity.SaleItem, 0)
	s.Payments = make([]*entity.Payment, 0)
	for _, it := range r.store.data.items {
		if it.SaleID == s.ID {
			c := *it
			s.Items = append(s.Items, &c)
		}
	}
	for _, p := range r.store.data.payments {
		if p.SaleID == s.ID {
			c := *p
			s.Payments = append(s.Payments, &c)
		}
	}
	return &s
}
