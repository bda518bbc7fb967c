// Package memory implementa los puertos de persistencia sobre mapas en memoria.
// Se usa en tests y ejemplos; la transaccionalidad se simula con snapshot y
// restauración del estado bajo un mutex global (una tx a la vez).
package memory

import (
	"sort"
	"sync"

	"github.com/invorya/stockledger/internal/domain/entity"
)

// Store estado compartido: filas vivas, libro y catálogo mínimo de estanterías.
type Store struct {
	mu      sync.Mutex
	records map[string]*entity.InventoryRecord
	entries []*entity.LedgerEntry
	shelves map[string]struct{}

	// LedgerCreateHook permite inyectar fallos antes de insertar un asiento
	// (tests de atomicidad). nil = sin fallo.
	LedgerCreateHook func(entry *entity.LedgerEntry) error

	// RecordCreateHook permite inyectar fallos antes de insertar un registro
	// (tests de carreras de creación). nil = sin fallo.
	RecordCreateHook func(record *entity.InventoryRecord) error
}

// NewStore construye el store con las estanterías indicadas.
func NewStore(shelfIDs ...string) *Store {
	s := &Store{
		records: make(map[string]*entity.InventoryRecord),
		shelves: make(map[string]struct{}),
	}
	for _, id := range shelfIDs {
		s.shelves[id] = struct{}{}
	}
	return s
}

// AddShelf registra una estantería en el catálogo.
func (s *Store) AddShelf(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shelves[id] = struct{}{}
}

// Record devuelve una copia del registro o nil (solo lectura, para asserts).
func (s *Store) Record(id string) *entity.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil
	}
	cp := *r
	return &cp
}

// RecordCount cantidad de filas vivas.
func (s *Store) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Entries devuelve copia del libro completo en orden de inserción (para asserts).
func (s *Store) Entries() []*entity.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.LedgerEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// snapshot copia el estado mutable. Los asientos son inmutables, basta copiar
// el slice; los registros se copian por valor.
func (s *Store) snapshot() ([]*entity.LedgerEntry, map[string]*entity.InventoryRecord) {
	entries := make([]*entity.LedgerEntry, len(s.entries))
	copy(entries, s.entries)
	records := make(map[string]*entity.InventoryRecord, len(s.records))
	for id, r := range s.records {
		cp := *r
		records[id] = &cp
	}
	return entries, records
}

func (s *Store) restore(entries []*entity.LedgerEntry, records map[string]*entity.InventoryRecord) {
	s.entries = entries
	s.records = records
}

// findByKey busca por la tripleta de unicidad. Requiere mutex tomado.
func (s *Store) findByKey(productID, shelfID, batchKey string) *entity.InventoryRecord {
	for _, r := range s.records {
		if r.ProductID == productID && r.ShelfID == shelfID && r.BatchKey() == batchKey {
			return r
		}
	}
	return nil
}

// listEntries filtra y ordena asientos de un registro, más reciente primero.
// Requiere mutex tomado.
func (s *Store) listEntries(inventoryID string) []*entity.LedgerEntry {
	var out []*entity.LedgerEntry
	for _, e := range s.entries {
		if e.InventoryID == inventoryID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func copyRecord(r *entity.InventoryRecord) *entity.InventoryRecord {
	cp := *r
	if r.ExpiryDate != nil {
		d := *r.ExpiryDate
		cp.ExpiryDate = &d
	}
	return &cp
}
