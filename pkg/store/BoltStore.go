package store

import bolt "go.etcd.io/bbolt"

import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Bolt Ledger Store


const NAME = "BoltStore"
var Log = clog.NewCustomLog(NAME)


/*
	Bolt Store
		1.) open the db at the given filepath
		2.) create the committed bucket and the transaction id index bucket if
			they do not already exist

	committed entries are keyed by their slot (term, sequence) so a cursor walk
	returns them in commit order, and the id index enforces identity uniqueness
	across restarts
*/

func NewBoltStore(dbPath string) (*BoltStore, error) {
	db, openErr := bolt.Open(dbPath, 0600, nil)
	if openErr != nil { return nil, openErr }

	createBuckets := func(tx *bolt.Tx) error {
		_, committedErr := tx.CreateBucketIfNotExists([]byte(CommittedBucket))
		if committedErr != nil { return committedErr }

		_, indexErr := tx.CreateBucketIfNotExists([]byte(TxIndexBucket))
		if indexErr != nil { return indexErr }

		return nil
	}

	bucketErr := db.Update(createBuckets)
	if bucketErr != nil { return nil, bucketErr }

	return &BoltStore{
		DBFile: dbPath,
		DB: db,
	}, nil
}

/*
	Append Committed:
		1.) if the transaction id is already indexed, skip --> replays and
			reconciliation can deliver the same committed entry more than once
		2.) otherwise write the entry at its slot key and index the id
*/

func (bStore *BoltStore) AppendCommitted(entry ledger.LedgerEntry) error {
	transaction := func(tx *bolt.Tx) error {
		index := tx.Bucket([]byte(TxIndexBucket))

		txIdKey := []byte(entry.Transaction.Id)
		if index.Get(txIdKey) != nil { return nil }

		encoded, encodeErr := utils.EncodeStructToBytes[ledger.LedgerEntry](entry)
		if encodeErr != nil { return encodeErr }

		slotKey := EncodeSlotKey(entry.Term, entry.Sequence)

		committed := tx.Bucket([]byte(CommittedBucket))
		putErr := committed.Put(slotKey, encoded)
		if putErr != nil { return putErr }

		return index.Put(txIdKey, slotKey)
	}

	return bStore.DB.Update(transaction)
}

/*
	Replay Committed:
		cursor walk of the committed bucket --> keys are big endian slot keys so
		iteration order is exactly (term, sequence) commit order
*/

func (bStore *BoltStore) ReplayCommitted() ([]ledger.LedgerEntry, error) {
	var entries []ledger.LedgerEntry

	transaction := func(tx *bolt.Tx) error {
		committed := tx.Bucket([]byte(CommittedBucket))

		cursor := committed.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			entry, decodeErr := utils.DecodeBytesToStruct[ledger.LedgerEntry](value)
			if decodeErr != nil { return decodeErr }

			entries = append(entries, *entry)
		}

		return nil
	}

	viewErr := bStore.DB.View(transaction)
	if viewErr != nil { return nil, viewErr }

	return entries, nil
}

func (bStore *BoltStore) Close() error {
	return bStore.DB.Close()
}
