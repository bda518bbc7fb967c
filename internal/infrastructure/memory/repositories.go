package memory

import (
	"sort"

	"github.com/invorya/stockledger/internal/domain/entity"
	"github.com/invorya/stockledger/internal/domain/repository"
)

var (
	_ repository.InventoryRecordRepository = (*RecordRepo)(nil)
	_ repository.LedgerRepository          = (*LedgerRepo)(nil)
	_ repository.ShelfRepository           = (*ShelfRepo)(nil)
)

// RecordRepo repositorio de registros sobre el Store. Con locking=true cada
// método toma el mutex (uso fuera de tx); dentro del TxRunner el mutex ya está
// tomado y se pasa locking=false.
type RecordRepo struct {
	store   *Store
	locking bool
}

// NewRecordRepository repositorio independiente (lecturas fuera de transacción).
func NewRecordRepository(store *Store) *RecordRepo {
	return &RecordRepo{store: store, locking: true}
}

func (r *RecordRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *RecordRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	defer r.lock()()
	rec, ok := r.store.records[id]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (r *RecordRepo) GetByKey(productID, shelfID, batchNumber string) (*entity.InventoryRecord, error) {
	defer r.lock()()
	rec := r.store.findByKey(productID, shelfID, entity.NormalizeBatch(batchNumber))
	if rec == nil {
		return nil, nil
	}
	return copyRecord(rec), nil
}

// GetByIDForUpdate en memoria equivale a GetByID: el TxRunner ya serializa.
func (r *RecordRepo) GetByIDForUpdate(id string) (*entity.InventoryRecord, error) {
	return r.GetByID(id)
}

func (r *RecordRepo) GetByKeyForUpdate(productID, shelfID, batchNumber string) (*entity.InventoryRecord, error) {
	return r.GetByKey(productID, shelfID, batchNumber)
}

func (r *RecordRepo) Create(record *entity.InventoryRecord) error {
	defer r.lock()()
	if r.store.RecordCreateHook != nil {
		if err := r.store.RecordCreateHook(record); err != nil {
			return err
		}
	}
	r.store.records[record.ID] = copyRecord(record)
	return nil
}

func (r *RecordRepo) Save(record *entity.InventoryRecord) error {
	defer r.lock()()
	r.store.records[record.ID] = copyRecord(record)
	return nil
}

func (r *RecordRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.records, id)
	return nil
}

func (r *RecordRepo) ListByShelf(shelfID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	defer r.lock()()
	var out []*entity.InventoryRecord
	for _, rec := range r.store.records {
		if rec.ShelfID == shelfID {
			out = append(out, copyRecord(rec))
		}
	}
	sortRecords(out)
	return page(out, limit, offset), nil
}

func (r *RecordRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	defer r.lock()()
	var out []*entity.InventoryRecord
	for _, rec := range r.store.records {
		if rec.ProductID == productID {
			out = append(out, copyRecord(rec))
		}
	}
	sortRecords(out)
	return page(out, limit, offset), nil
}

// LedgerRepo repositorio del libro sobre el Store.
type LedgerRepo struct {
	store   *Store
	locking bool
}

// NewLedgerRepository repositorio independiente (lecturas fuera de transacción).
func NewLedgerRepository(store *Store) *LedgerRepo {
	return &LedgerRepo{store: store, locking: true}
}

func (r *LedgerRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	defer r.lock()()
	if r.store.LedgerCreateHook != nil {
		if err := r.store.LedgerCreateHook(entry); err != nil {
			return err
		}
	}
	cp := *entry
	r.store.entries = append(r.store.entries, &cp)
	return nil
}

func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	defer r.lock()()
	for _, e := range r.store.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *LedgerRepo) ListByInventory(inventoryID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	defer r.lock()()
	return page(r.store.listEntries(inventoryID), limit, offset), nil
}

func (r *LedgerRepo) CountByInventory(inventoryID string) (int, error) {
	defer r.lock()()
	return len(r.store.listEntries(inventoryID)), nil
}

func (r *LedgerRepo) DeleteByInventory(inventoryID string) error {
	defer r.lock()()
	kept := r.store.entries[:0:0]
	for _, e := range r.store.entries {
		if e.InventoryID != inventoryID {
			kept = append(kept, e)
		}
	}
	r.store.entries = kept
	return nil
}

// ShelfRepo catálogo mínimo de estanterías en memoria.
type ShelfRepo struct {
	store   *Store
	locking bool
}

// NewShelfRepository repositorio independiente.
func NewShelfRepository(store *Store) *ShelfRepo {
	return &ShelfRepo{store: store, locking: true}
}

func (r *ShelfRepo) Exists(shelfID string) (bool, error) {
	if r.locking {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	_, ok := r.store.shelves[shelfID]
	return ok, nil
}

func sortRecords(list []*entity.InventoryRecord) {
	// orden estable por producto, estantería y lote para listados deterministas
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		if a.ShelfID != b.ShelfID {
			return a.ShelfID < b.ShelfID
		}
		return a.BatchKey() < b.BatchKey()
	})
}
