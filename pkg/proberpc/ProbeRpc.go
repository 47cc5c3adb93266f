package proberpc


//=========================================== Probe RPC Messages


/*
	the probe service carries both liveness pings and clock probes --> the two
	monitors share transport scaffolding, one server and one port per node
*/

type HealthPing struct {
	NodeId    string `cbor:"nodeId"`
	Timestamp int64  `cbor:"timestamp"`
}

type HealthPingResponse struct {
	NodeId    string `cbor:"nodeId"`
	Timestamp int64  `cbor:"timestamp"`
}

/*
	ClockProbe follows the ntp exchange --> T0 is the sender's transmit time,
	the responder fills T1 (receive) and T2 (reply) from its own clock, and the
	sender records T3 on arrival
*/

type ClockProbe struct {
	NodeId string `cbor:"nodeId"`
	T0     int64  `cbor:"t0"`
}

type ClockProbeResponse struct {
	NodeId string `cbor:"nodeId"`
	T1     int64  `cbor:"t1"`
	T2     int64  `cbor:"t2"`
}
