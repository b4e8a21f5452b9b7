package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

type priceRepository struct {
	store *Store
	inTx  bool
}

func copyPrice(p *entity.Price) *entity.Price {
	c := *p
	if p.EndTime != nil {
		t := *p.EndTime
		c.EndTime = &t
	}
	return &c
}

func (r *priceRepository) Create(_ context.Context, p *entity.Price) error {
	defer r.store.lock(r.inTx)()
	if err := r.store.takeFailure(OpPriceCreate); err != nil {
		return err
	}
	r.store.data.prices = append(r.store.data.prices, copyPrice(p))
	return nil
}

func (r *priceRepository) GetActive(_ context.Context, productID string) (*entity.Price, error) {
	defer r.store.lock(r.inTx)()
	var best *entity.Price
	for _, p := range r.store.data.prices {
		if p.ProductID != productID || !p.Active {
			continue
		}
		if best == nil || !p.StartTime.Before(best.StartTime) {
			best = p
		}
	}
	if best == nil {
		return nil, nil
	}
	return copyPrice(best), nil
}

func (r *priceRepository) DeactivateActive(_ context.Context, productID string, at time.Time) (int64, error) {
	defer r.store.lock(r.inTx)()
	var n int64
	for _, p := range r.store.data.prices {
		if p.ProductID == productID && p.Active {
			end := at
			p.Active = false
			p.EndTime = &end
			n++
		}
	}
	return n, nil
}

func (r *priceRepository) List(_ context.Context, productID string, limit, offset int) ([]*entity.Price, error) {
	defer r.store.lock(r.inTx)()
	out := make([]*entity.Price, 0)
	// recorrido inverso: a igual start_time la última insertada va primero
	for i := len(r.store.data.prices) - 1; i >= 0; i-- {
		p := r.store.data.prices[i]
		if productID == "" || p.ProductID == productID {
			out = append(out, copyPrice(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	from, to := paginate(len(out), limit, offset)
	return out[from:to], nil
}
