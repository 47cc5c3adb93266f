package dedup

import "sync"
import "time"

import "github.com/hashicorp/golang-lru/v2/expirable"


type DeduplicationOpts struct {
	WindowSize int
	RetentionPeriod time.Duration
}

/*
	tracks recently accepted payments by content hash

	identity (transaction id) is the only authoritative dedup key --> content
	matches never reject a payment, they are bookkeeping for operators chasing
	double submissions (same amount/sender/receiver under a fresh id)
*/

type DeduplicationManager struct {
	mutex sync.Mutex
	contentHashes *expirable.LRU[string, string]

	totalRegistered int64
	idDuplicateAttempts int64
	contentMatches int64
}

type DeduplicationStats struct {
	TotalRegistered     int64 `json:"totalRegistered"`
	IdDuplicateAttempts int64 `json:"idDuplicateAttempts"`
	ContentMatches      int64 `json:"contentMatches"`
}

const DefaultWindowSize = 8192
const DefaultRetentionPeriod = 24 * time.Hour
