package postgres

import (
	"context"
	"fmt"

	"github.com/invorya/stockledger/internal/domain/repository"
)

var _ repository.ShelfRepository = (*ShelfRepo)(nil)

// ShelfRepo verificación de existencia contra el catálogo de estanterías.
// La tabla shelves pertenece al módulo de catálogo; aquí solo se consulta.
type ShelfRepo struct {
	q Querier
}

// NewShelfRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShelfRepository(q Querier) *ShelfRepo {
	return &ShelfRepo{q: q}
}

// Exists indica si la estantería existe.
func (r *ShelfRepo) Exists(shelfID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM shelves WHERE id = $1)`, shelfID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("shelf exists: %w", err)
	}
	return ok, nil
}
