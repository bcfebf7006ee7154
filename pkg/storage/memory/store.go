// Package memory provides an in-process implementation of storage.Storage.
// It is used for local runs and as the reference backend in tests.
package memory

import (
	"sync"
	"time"

	"github.com/chris/coin-ledger/pkg/storage"
)

// Store implements the Storage interface with maps guarded by one RWMutex.
//
// Every mutation holds mu for writing across its whole read-check-write
// sequence; reads share it.
type Store struct {
	mu                sync.RWMutex
	accounts          map[string]*accountRecord
	transactions      map[string]*transactionRecord
	rewards           map[string]*rewardRecord
	rewardOrder       []string
	userRewards       map[string]*userRewardRecord
	userRewardsByUser map[string][]string

	now func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts:          make(map[string]*accountRecord),
		transactions:      make(map[string]*transactionRecord),
		rewards:           make(map[string]*rewardRecord),
		userRewards:       make(map[string]*userRewardRecord),
		userRewardsByUser: make(map[string][]string),
		now:               time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
