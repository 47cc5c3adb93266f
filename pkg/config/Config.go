package config

import "errors"
import "os"
import "strconv"
import "strings"

import "github.com/joho/godotenv"

import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Config


const NAME = "Config"
var Log = clog.NewCustomLog(NAME)

/*
	Load Config:
		resolve node configuration from the environment, with an optional
		dotenv file layered underneath for local development

		the real environment always wins over the dotenv file, so deployments
		can override without editing files
*/

func LoadConfig(envFile string) (*Config, error) {
	if envFile != utils.GetZero[string]() {
		if dotenvErr := godotenv.Load(envFile); dotenvErr != nil {
			Log.Warn("no dotenv file loaded from:", envFile)
		}
	}

	conf := &Config{
		NodeId: os.Getenv(NodeIdEnv),
		Host: os.Getenv(HostEnv),
		Peers: parsePeers(os.Getenv(PeersEnv)),
		ElectionPort: intFromEnv(ElectionPortEnv, DefaultElectionPort),
		ReplicationPort: intFromEnv(ReplicationPortEnv, DefaultReplicationPort),
		ProbePort: intFromEnv(ProbePortEnv, DefaultProbePort),
		HTTPPort: intFromEnv(HTTPPortEnv, DefaultHTTPPort),
		StorePath: stringFromEnv(StorePathEnv, DefaultStorePath),
		ElectionTimeoutMinInMs: intFromEnv(ElectionTimeoutMinEnv, 0),
		ElectionTimeoutMaxInMs: intFromEnv(ElectionTimeoutMaxEnv, 0),
		HeartbeatIntervalInMs: intFromEnv(HeartbeatIntervalEnv, 0),
		ReplicationTimeoutInMs: intFromEnv(ReplicationTimeoutEnv, 0),
		MaxTransactionAmount: floatFromEnv(MaxTransactionAmountEnv, 0),
		PingIntervalInMs: intFromEnv(PingIntervalEnv, 0),
		FailureThreshold: intFromEnv(FailureThresholdEnv, 0),
		ClockProbeIntervalInMs: intFromEnv(ClockProbeIntervalEnv, 0),
		MaxConnections: intFromEnv(MaxConnectionsEnv, DefaultMaxConnections),
	}

	if conf.Host == utils.GetZero[string]() {
		hostname, hostErr := os.Hostname()
		if hostErr != nil { return nil, errors.New("host not configured and hostname lookup failed") }
		conf.Host = hostname
	}

	if conf.NodeId == utils.GetZero[string]() { conf.NodeId = conf.Host }

	if validationErr := conf.validate(); validationErr != nil { return nil, validationErr }
	return conf, nil
}

func (conf *Config) validate() error {
	if len(conf.Peers) == 0 { return errors.New("at least one peer must be configured") }

	for _, peer := range conf.Peers {
		if peer == conf.Host { return errors.New("peer list must not contain the local host") }
	}

	if conf.ElectionTimeoutMinInMs > conf.ElectionTimeoutMaxInMs { return errors.New("election timeout min must not exceed max") }
	if conf.MaxTransactionAmount < 0 { return errors.New("max transaction amount must not be negative") }

	return nil
}

func parsePeers(raw string) []string {
	if raw == utils.GetZero[string]() { return nil }

	split := strings.Split(raw, ",")
	trimmed := utils.Map[string, string](split, func(peer string) string { return strings.TrimSpace(peer) })

	return utils.Filter[string](trimmed, func(peer string) bool { return peer != utils.GetZero[string]() })
}

func stringFromEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == utils.GetZero[string]() { return defaultValue }
	return value
}

func intFromEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == utils.GetZero[string]() { return defaultValue }

	parsed, parseErr := strconv.Atoi(value)
	if parseErr != nil {
		Log.Warn("unable to parse", key, "as integer, falling back to default")
		return defaultValue
	}

	return parsed
}

func floatFromEnv(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == utils.GetZero[string]() { return defaultValue }

	parsed, parseErr := strconv.ParseFloat(value, 64)
	if parseErr != nil {
		Log.Warn("unable to parse", key, "as float, falling back to default")
		return defaultValue
	}

	return parsed
}
