package system

import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== System


const NAME = "System"
var Log = clog.NewCustomLog(NAME)


func (sys *System) TransitionToFollower(opts StateTransitionOpts) {
	sys.stateMutex.Lock()
	defer sys.stateMutex.Unlock()

	sys.State = Follower

	if opts.VotedFor != nil {
		sys.VotedFor = *opts.VotedFor
	} else { sys.VotedFor = utils.GetZero[string]() }

	if opts.CurrentTerm != nil { sys.CurrentTerm = *opts.CurrentTerm }
	if opts.Leader != nil { sys.CurrentLeader = *opts.Leader }

	Log.Warn("node", sys.Host, "transitioned to follower for term", sys.CurrentTerm)
}

/*
	Transition To Candidate:
		atomically increment the term, vote for self, and clear the known leader
		--> returns the new term so the election broadcast is pinned to it even if
			the state advances again while votes are in flight
*/

func (sys *System) TransitionToCandidate() int64 {
	sys.stateMutex.Lock()
	defer sys.stateMutex.Unlock()

	sys.State = Candidate
	sys.CurrentTerm = sys.CurrentTerm + int64(1)
	sys.VotedFor = sys.Host
	sys.CurrentLeader = utils.GetZero[string]()

	Log.Warn("node", sys.Host, "transitioned to candidate, starting election for term", sys.CurrentTerm)

	return sys.CurrentTerm
}

/*
	Transition To Leader:
		only valid from candidate --> a stale election result arriving after the
		node already reverted to follower must not grant leadership
*/

func (sys *System) TransitionToLeader(term int64) bool {
	sys.stateMutex.Lock()
	defer sys.stateMutex.Unlock()

	if sys.State != Candidate || sys.CurrentTerm != term { return false }

	sys.State = Leader
	sys.CurrentLeader = sys.Host

	Log.Warn("node", sys.Host, "has been elected leader for term", sys.CurrentTerm)

	return true
}

func (sys *System) GetStateAndTerm() (SystemState, int64) {
	sys.stateMutex.Lock()
	defer sys.stateMutex.Unlock()

	return sys.State, sys.CurrentTerm
}

func (sys *System) GetCurrentLeader() string {
	sys.stateMutex.Lock()
	defer sys.stateMutex.Unlock()

	return sys.CurrentLeader
}

/*
	Grant Vote If Eligible:
		atomically apply the request vote rules:
			1.) a request from a stale term is denied
			2.) a request from a higher term first advances the local term and
				clears any vote cast in the previous term
			3.) the vote is granted iff no vote has been cast this term or the
				vote already went to this candidate
*/

func (sys *System) GrantVoteIfEligible(candidateId string, term int64) (bool, int64) {
	sys.stateMutex.Lock()
	defer sys.stateMutex.Unlock()

	if term < sys.CurrentTerm { return false, sys.CurrentTerm }

	if term > sys.CurrentTerm {
		sys.CurrentTerm = term
		sys.State = Follower
		sys.VotedFor = utils.GetZero[string]()
	}

	if sys.VotedFor == utils.GetZero[string]() || sys.VotedFor == candidateId {
		sys.VotedFor = candidateId
		return true, sys.CurrentTerm
	}

	return false, sys.CurrentTerm
}

/*
	Adopt Term If Newer:
		observing a term at least as high as the local term from a heartbeat or
		append entry makes the node a follower of the sender --> returns false if
		the observed term is stale so the caller can reject the sender
*/

func (sys *System) AdoptTermIfNewer(leaderId string, term int64) (bool, int64) {
	sys.stateMutex.Lock()
	defer sys.stateMutex.Unlock()

	if term < sys.CurrentTerm { return false, sys.CurrentTerm }

	if term > sys.CurrentTerm {
		sys.CurrentTerm = term
		sys.VotedFor = utils.GetZero[string]()
	}

	sys.State = Follower
	sys.CurrentLeader = leaderId

	return true, sys.CurrentTerm
}

func (sys *System) SetStatus(status SystemStatus) {
	sys.statusMutex.Lock()
	defer sys.statusMutex.Unlock()

	sys.Status = status
}

func (sys *System) GetStatus() SystemStatus {
	sys.statusMutex.Lock()
	defer sys.statusMutex.Unlock()

	return sys.Status
}
