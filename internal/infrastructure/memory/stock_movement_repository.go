package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

type stockMovementRepository struct {
	store *Store
	inTx  bool
}

func (r *stockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.store.lock(r.inTx)()
	if err := r.store.takeFailure(OpMovementCreate); err != nil {
		return err
	}
	c := *m
	c.UnitCost = copyDecimal(m.UnitCost)
	c.TotalValue = copyDecimal(m.TotalValue)
	r.store.data.movements = append(r.store.data.movements, &c)
	return nil
}

func (r *stockMovementRepository) List(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.store.lock(r.inTx)()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.store.data.movements) - 1; i >= 0; i-- {
		m := r.store.data.movements[i]
		if productID == "" || m.ProductID == productID {
			c := *m
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	from, to := paginate(len(out), limit, offset)
	return out[from:to], nil
}
