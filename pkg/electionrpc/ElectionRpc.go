package electionrpc


//=========================================== Leader Election RPC Messages


/*
	messages are plain structs marshaled by the shared cbor codec --> see
	pkg/codec for how the codec is registered and selected
*/

type RequestVote struct {
	CandidateId string `cbor:"candidateId"`
	Term        int64  `cbor:"term"`
}

type RequestVoteResponse struct {
	Term        int64 `cbor:"term"`
	VoteGranted bool  `cbor:"voteGranted"`
}
