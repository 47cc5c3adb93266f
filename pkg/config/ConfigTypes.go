package config


type Config struct {
	NodeId string
	Host string
	Peers []string

	ElectionPort int
	ReplicationPort int
	ProbePort int
	HTTPPort int

	StorePath string

	ElectionTimeoutMinInMs int
	ElectionTimeoutMaxInMs int
	HeartbeatIntervalInMs int
	ReplicationTimeoutInMs int
	MaxTransactionAmount float64

	PingIntervalInMs int
	FailureThreshold int
	ClockProbeIntervalInMs int

	MaxConnections int
}

const NodeIdEnv = "SYNCPAY_NODE_ID"
const HostEnv = "SYNCPAY_HOST"
const PeersEnv = "SYNCPAY_PEERS"
const ElectionPortEnv = "SYNCPAY_ELECTION_PORT"
const ReplicationPortEnv = "SYNCPAY_REPLICATION_PORT"
const ProbePortEnv = "SYNCPAY_PROBE_PORT"
const HTTPPortEnv = "SYNCPAY_HTTP_PORT"
const StorePathEnv = "SYNCPAY_STORE_PATH"
const ElectionTimeoutMinEnv = "SYNCPAY_ELECTION_TIMEOUT_MIN_MS"
const ElectionTimeoutMaxEnv = "SYNCPAY_ELECTION_TIMEOUT_MAX_MS"
const HeartbeatIntervalEnv = "SYNCPAY_HEARTBEAT_INTERVAL_MS"
const ReplicationTimeoutEnv = "SYNCPAY_REPLICATION_TIMEOUT_MS"
const MaxTransactionAmountEnv = "SYNCPAY_MAX_TRANSACTION_AMOUNT"
const PingIntervalEnv = "SYNCPAY_PING_INTERVAL_MS"
const FailureThresholdEnv = "SYNCPAY_FAILURE_THRESHOLD"
const ClockProbeIntervalEnv = "SYNCPAY_CLOCK_PROBE_INTERVAL_MS"
const MaxConnectionsEnv = "SYNCPAY_MAX_CONNECTIONS"

const DefaultElectionPort = 54321
const DefaultReplicationPort = 54322
const DefaultProbePort = 54323
const DefaultHTTPPort = 8080
const DefaultStorePath = "./syncpay.db"
const DefaultMaxConnections = 10
