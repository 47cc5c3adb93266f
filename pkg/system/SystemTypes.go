package system

import "sync"


type SystemState string

const (
	Leader    SystemState = "leader"
	Candidate SystemState = "candidate"
	Follower  SystemState = "follower"
)

type SystemStatus string

const (
	Healthy SystemStatus = "healthy"
	Suspect SystemStatus = "suspect"
	Down    SystemStatus = "down"
)

/*
	System represents a node in the cluster, either the current node or a peer

	for the current node, the state machine fields (State, CurrentTerm, VotedFor,
	CurrentLeader) are guarded by stateMutex so a role change and its associated
	term bump are always observed as an atomic unit

	for peers, only Host, NodeId and Status are meaningful --> Status is owned by
	the health monitor and read by the other modules
*/

type System struct {
	Host   string
	NodeId string

	stateMutex    sync.Mutex
	State         SystemState
	CurrentTerm   int64
	VotedFor      string
	CurrentLeader string

	statusMutex sync.Mutex
	Status      SystemStatus
}

type StateTransitionOpts struct {
	CurrentTerm *int64
	VotedFor    *string
	Leader      *string
}
