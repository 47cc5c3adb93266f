package leaderelection

import "context"

import "github.com/sirgallo/syncpay/pkg/electionrpc"


//=========================================== Leader Election Server


/*
	RequestVoteRPC:
		grpc server implementation

		the vote decision is delegated to the state machine so the term
		comparison, single vote per term rule, and follower transition happen
		under one lock. a granted vote also resets the election timeout so
		the voter does not immediately start a competing election
*/

func (leService *LeaderElectionService) RequestVoteRPC(ctx context.Context, req *electionrpc.RequestVote) (*electionrpc.RequestVoteResponse, error) {
	Log.Debug("received requestVoteRPC from:", req.CandidateId, "for term:", req.Term)

	voteGranted, currentTerm := leService.CurrentSystem.GrantVoteIfEligible(req.CandidateId, req.Term)
	if voteGranted {
		Log.Info("vote granted to:", req.CandidateId, "for term:", req.Term)
		leService.attemptResetTimeoutSignal()
	}

	res := &electionrpc.RequestVoteResponse{
		Term: currentTerm,
		VoteGranted: voteGranted,
	}

	return res, nil
}
