package system


//=========================================== System Utils


/*
	quorum is a strict majority of the configured cluster, including self

	the peer set is fixed at startup, so quorum is always computed over the full
	configured size, never over the currently reachable subset --> a partitioned
	minority can never commit or elect
*/

func QuorumSize(totalNodes int) int {
	return (totalNodes / 2) + 1
}

/*
	collect the systems from the shared map that are not marked Down

	rpc broadcasts skip Down peers --> they are caught up by reconciliation once
	the health monitor observes them again
*/

func ReachableSystems(systems []*System) []*System {
	var reachable []*System
	for _, sys := range systems {
		if sys.GetStatus() != Down { reachable = append(reachable, sys) }
	}

	return reachable
}
