package leaderelection

import "context"
import "sync"
import "sync/atomic"

import "github.com/sirgallo/syncpay/pkg/electionrpc"
import "github.com/sirgallo/syncpay/pkg/system"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Leader Election Client


/*
	Election:
		when the election timeout is reached, an election occurs

		1.) the current system transitions to candidate, votes for itself, and increments
			the term. the new term is pinned for the remainder of this election so late
			responses from older rounds cannot promote the wrong term
		2.) send RequestVoteRPCs to all reachable systems in parallel
		3.) if the candidate receives votes from a majority of the configured cluster,
			it transitions to leader for the pinned term and signals the replication
			module to assert leadership with an immediate heartbeat round
		4.) if a higher term is discovered on any response, immediately revert to
			follower at that term and cancel remaining requests
		5.) otherwise revert to follower and wait for the next randomized timeout
*/

func (leService *LeaderElectionService) Election() {
	electionTerm := leService.CurrentSystem.TransitionToCandidate()
	leRespChans := leService.createLERespChannels()

	reachableSystems := system.ReachableSystems(leService.Systems)
	minimumVotes := system.QuorumSize(len(leService.Systems) + 1)
	votesGranted := int64(1)

	var electionWG sync.WaitGroup

	electionWG.Add(1)
	go func() {
		defer electionWG.Done()

		for {
			select {
				case <- leRespChans.BroadcastClose:
					// responses racing the close are still buffered --> account for
					// them before deciding the outcome
					select {
						case term :=<- leRespChans.HigherTermDiscovered:
							Log.Warn("higher term discovered during election:", term)
							leService.CurrentSystem.TransitionToFollower(system.StateTransitionOpts{ CurrentTerm: &term })
							return
						default:
					}

					for len(leRespChans.VotesChan) > 0 {
						<- leRespChans.VotesChan
						atomic.AddInt64(&votesGranted, 1)
					}

					if votesGranted >= int64(minimumVotes) {
						if leService.CurrentSystem.TransitionToLeader(electionTerm) {
							Log.Info("quorum of votes received, transitioning to leader for term:", electionTerm)
							leService.attemptHeartbeatOnElection()
						}
					} else {
						Log.Warn("minimum votes for quorum not received...")
						leService.CurrentSystem.TransitionToFollower(system.StateTransitionOpts{})
					}

					return
				case <- leRespChans.VotesChan:
					atomic.AddInt64(&votesGranted, 1)
				case term :=<- leRespChans.HigherTermDiscovered:
					Log.Warn("higher term discovered during election:", term)
					leService.CurrentSystem.TransitionToFollower(system.StateTransitionOpts{ CurrentTerm: &term })
					return
			}
		}
	}()

	electionWG.Add(1)
	go func() {
		defer electionWG.Done()
		leService.broadcastVotes(reachableSystems, electionTerm, leRespChans)
	}()

	electionWG.Wait()
}

/*
	Broadcast Votes:
		utilized by the Election function

		RequestVoteRPCs are generated and a go routine is spawned for each reachable
		system. If a higher term is discovered on a response, all outstanding
		goroutines are signalled to stop broadcasting.
*/

func (leService *LeaderElectionService) broadcastVotes(reachableSystems []*system.System, electionTerm int64, leRespChans LEResponseChannels) {
	defer close(leRespChans.BroadcastClose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	request := &electionrpc.RequestVote{
		CandidateId: leService.CurrentSystem.Host,
		Term: electionTerm,
	}

	var requestVoteWG sync.WaitGroup

	for _, sys := range reachableSystems {
		requestVoteWG.Add(1)

		go func(sys *system.System) {
			defer requestVoteWG.Done()

			conn, connErr := leService.ConnectionPool.GetConnection(sys.Host, leService.Port)
			if connErr != nil {
				Log.Error("failed to connect to", sys.Host + leService.Port, "-->", connErr.Error())
				return
			}

			defer leService.ConnectionPool.PutConnection(sys.Host, conn)

			select {
				case <- ctx.Done():
					return
				default:
					client := electionrpc.NewLeaderElectionServiceClient(conn)

					requestVoteRPC := func() (*electionrpc.RequestVoteResponse, error) {
						rpcCtx, rpcCancel := context.WithTimeout(ctx, RequestVoteRPCTimeout)
						defer rpcCancel()

						res, rpcErr := client.RequestVoteRPC(rpcCtx, request)
						if rpcErr != nil { return utils.GetZero[*electionrpc.RequestVoteResponse](), rpcErr }
						return res, nil
					}

					maxRetries := 3
					expOpts := utils.ExpBackoffOpts{ MaxRetries: &maxRetries, TimeoutInMilliseconds: 1 }
					expBackoff := utils.NewExponentialBackoffStrat[*electionrpc.RequestVoteResponse](expOpts)

					res, rpcErr := expBackoff.PerformBackoff(requestVoteRPC)
					if rpcErr != nil {
						Log.Warn("no vote response from", sys.Host, "-->", rpcErr.Error())
						return
					}

					if res.Term > electionTerm {
						leRespChans.HigherTermDiscovered <- res.Term
						cancel()
						return
					}

					if res.VoteGranted { leRespChans.VotesChan <- 1 }
			}
		}(sys)
	}

	requestVoteWG.Wait()
}

func (leService *LeaderElectionService) createLERespChannels() LEResponseChannels {
	return LEResponseChannels{
		BroadcastClose: make(chan struct{}),
		VotesChan: make(chan int, len(leService.Systems)),
		HigherTermDiscovered: make(chan int64, len(leService.Systems)),
	}
}
