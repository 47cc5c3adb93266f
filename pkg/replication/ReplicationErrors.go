package replication

import "errors"
import "fmt"


//=========================================== Replication Errors


// ErrStaleTerm surfaces when a request or response carries a higher term than the node's own.
var ErrStaleTerm = errors.New("term is stale, a newer leadership term exists")

// ErrConsensusTimeout surfaces when a majority of acknowledgements does not arrive within the replication timeout.
var ErrConsensusTimeout = errors.New("consensus timeout, majority acknowledgement not reached")

// ErrInvalidTransaction surfaces when a submitted transaction fails validation before replication begins.
var ErrInvalidTransaction = errors.New("invalid transaction")

/*
	NotLeaderError carries a hint for the current leader so clients can redirect
	their submission instead of retrying blindly
*/

type NotLeaderError struct {
	LeaderHint string
}

func (e *NotLeaderError) Error() string {
	if e.LeaderHint == "" { return "not the leader, no known leader to redirect to" }
	return fmt.Sprintf("not the leader, redirect to %s", e.LeaderHint)
}
