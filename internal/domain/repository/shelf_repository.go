package repository

// ShelfRepository define el puerto mínimo hacia el catálogo de estanterías.
// El catálogo (bodegas, racks, estanterías, productos) es de otro módulo;
// aquí solo se verifica existencia de forma defensiva antes de mutar stock.
type ShelfRepository interface {
	Exists(shelfID string) (bool, error)
}
