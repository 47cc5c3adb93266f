package leaderelection

import "math/rand"
import "time"


//=========================================== Leader Election Utils


/*
	generate a randomized timeout within the configured window

	randomization staggers candidates so simultaneous elections and split
	votes stay rare
*/

func (leService *LeaderElectionService) calculateTimeout() time.Duration {
	spread := leService.ElectionTimeoutMaxInMs - leService.ElectionTimeoutMinInMs + 1
	timeout := rand.Intn(spread) + leService.ElectionTimeoutMinInMs
	return time.Duration(timeout) * time.Millisecond
}

/*
	Reset Timer:
		1.) generate a new randomized timeout within the configured window
		2.) if unable to stop the timer, drain it
		3.) reset the timer with the new timeout period
*/

func (leService *LeaderElectionService) resetTimer() {
	leService.Timeout = leService.calculateTimeout()

	if ! leService.ElectionTimer.Stop() {
		select {
			case <- leService.ElectionTimer.C:
			default:
		}
	}

	leService.ElectionTimer.Reset(leService.Timeout)
}

func (leService *LeaderElectionService) attemptResetTimeoutSignal() {
	select {
		case leService.ResetTimeoutSignal <- true:
		default:
	}
}

func (leService *LeaderElectionService) attemptHeartbeatOnElection() {
	select {
		case leService.HeartbeatOnElection <- true:
		default:
	}
}
