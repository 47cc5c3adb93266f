package dedup

import "strconv"

import "github.com/hashicorp/golang-lru/v2/expirable"

import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Deduplication Manager


const NAME = "Dedup"
var Log = clog.NewCustomLog(NAME)


func NewDeduplicationManager(opts DeduplicationOpts) *DeduplicationManager {
	windowSize := opts.WindowSize
	if windowSize == 0 { windowSize = DefaultWindowSize }

	retention := opts.RetentionPeriod
	if retention == 0 { retention = DefaultRetentionPeriod }

	return &DeduplicationManager{
		contentHashes: expirable.NewLRU[string, string](windowSize, nil, retention),
	}
}

/*
	Register Transaction:
		record the content hash of an accepted payment --> the expirable lru
		bounds memory the same way the retention sweep did in earlier revisions,
		entries simply age out after the retention period

		if another recent payment carried the same content under a different id,
		count it as a content match and surface a warning --> not a rejection
*/

func (dm *DeduplicationManager) RegisterTransaction(tx ledger.Transaction) {
	hash := contentHashForTransaction(tx)

	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	existingId, ok := dm.contentHashes.Get(hash)
	if ok && existingId != tx.Id {
		dm.contentMatches++
		Log.Warn("payment", tx.Id, "matches content of recent payment", existingId)
	}

	dm.contentHashes.Add(hash, tx.Id)
	dm.totalRegistered++
}

/*
	Record Id Duplicate:
		called when a submission or replication arrives for an id the ledger
		already holds --> benign, but worth counting
*/

func (dm *DeduplicationManager) RecordIdDuplicate(txId string) {
	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	dm.idDuplicateAttempts++
}

func (dm *DeduplicationManager) GetStats() DeduplicationStats {
	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	return DeduplicationStats{
		TotalRegistered: dm.totalRegistered,
		IdDuplicateAttempts: dm.idDuplicateAttempts,
		ContentMatches: dm.contentMatches,
	}
}

func contentHashForTransaction(tx ledger.Transaction) string {
	amount := strconv.FormatFloat(tx.Amount, 'f', 2, 64)
	return utils.ContentHash(amount, tx.Sender, tx.Receiver)
}
