package leaderelection

import "time"

import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/system"


type LeaderElectionOpts struct {
	Port int
	ElectionTimeoutMinInMs int
	ElectionTimeoutMaxInMs int

	ConnectionPool *connpool.ConnectionPool
	CurrentSystem *system.System
	Systems []*system.System
}

type LeaderElectionService struct {
	Port string
	ElectionTimeoutMinInMs int
	ElectionTimeoutMaxInMs int

	ConnectionPool *connpool.ConnectionPool
	CurrentSystem *system.System
	Systems []*system.System

	Timeout time.Duration
	ElectionTimer *time.Timer

	ResetTimeoutSignal chan bool
	LeaderDownSignal chan bool
	HeartbeatOnElection chan bool
}

type LEResponseChannels struct {
	BroadcastClose chan struct{}
	VotesChan chan int
	HigherTermDiscovered chan int64
}

const DefaultElectionTimeoutMinInMs = 150
const DefaultElectionTimeoutMaxInMs = 300
const RequestVoteRPCTimeout = 100 * time.Millisecond
