package store

import bolt "go.etcd.io/bbolt"

import "github.com/sirgallo/syncpay/pkg/ledger"


/*
	LedgerStore is the pluggable durability boundary

	the core operates on the in-memory ledger only --> a store, when configured,
	receives committed entries as they commit and replays them on startup, and
	must preserve append only slot order and transaction identity uniqueness
*/

type LedgerStore interface {
	AppendCommitted(entry ledger.LedgerEntry) error
	ReplayCommitted() ([]ledger.LedgerEntry, error)
	Close() error
}

type BoltStore struct {
	DBFile string
	DB *bolt.DB
}

const (
	CommittedBucket = "committed"
	TxIndexBucket = "txindex"
)
