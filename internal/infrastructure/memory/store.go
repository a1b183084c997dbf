// Package memory implementa los puertos de persistencia en memoria (STORAGE_DRIVER=memory y tests).
package memory

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Store agrupa los datos compartidos por los repositorios en memoria.
type Store struct {
	mu       sync.RWMutex
	users    map[string]userRecord
	listings map[string]listingRecord
	bookings map[string]bookingRecord
	seq      int64 // orden de inserción para listados estables
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]userRecord),
		listings: make(map[string]listingRecord),
		bookings: make(map[string]bookingRecord),
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// fold normaliza para comparar sin distinguir mayúsculas. Un Caser no se comparte entre goroutines.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// sortNewestFirst ordena por orden de inserción descendente.
func sortNewestFirst[T any](items []T, seq func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool { return seq(items[i]) > seq(items[j]) })
}
