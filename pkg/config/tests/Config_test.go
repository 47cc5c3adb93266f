package configtests

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/sirgallo/syncpay/pkg/config"


func setClusterEnv(t *testing.T) {
	t.Helper()

	t.Setenv(config.NodeIdEnv, "node-1")
	t.Setenv(config.HostEnv, "10.0.0.1")
	t.Setenv(config.PeersEnv, "10.0.0.2, 10.0.0.3")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	setClusterEnv(t)
	t.Setenv(config.ElectionPortEnv, "6001")
	t.Setenv(config.MaxTransactionAmountEnv, "5000.50")

	conf, confErr := config.LoadConfig("")
	require.NoError(t, confErr)

	assert.Equal(t, "node-1", conf.NodeId)
	assert.Equal(t, "10.0.0.1", conf.Host)
	assert.Equal(t, []string{ "10.0.0.2", "10.0.0.3" }, conf.Peers)
	assert.Equal(t, 6001, conf.ElectionPort)
	assert.Equal(t, config.DefaultReplicationPort, conf.ReplicationPort)
	assert.Equal(t, config.DefaultStorePath, conf.StorePath)
	assert.Equal(t, 5000.50, conf.MaxTransactionAmount)
}

func TestLoadConfigRequiresPeers(t *testing.T) {
	t.Setenv(config.NodeIdEnv, "node-1")
	t.Setenv(config.HostEnv, "10.0.0.1")
	t.Setenv(config.PeersEnv, "")

	_, confErr := config.LoadConfig("")
	assert.Error(t, confErr)
}

func TestLoadConfigRejectsSelfInPeers(t *testing.T) {
	setClusterEnv(t)
	t.Setenv(config.PeersEnv, "10.0.0.1,10.0.0.2")

	_, confErr := config.LoadConfig("")
	assert.Error(t, confErr)
}

func TestLoadConfigRejectsInvertedTimeoutWindow(t *testing.T) {
	setClusterEnv(t)
	t.Setenv(config.ElectionTimeoutMinEnv, "400")
	t.Setenv(config.ElectionTimeoutMaxEnv, "200")

	_, confErr := config.LoadConfig("")
	assert.Error(t, confErr)
}

func TestLoadConfigFallsBackOnUnparseableNumbers(t *testing.T) {
	setClusterEnv(t)
	t.Setenv(config.ElectionPortEnv, "not-a-number")

	conf, confErr := config.LoadConfig("")
	require.NoError(t, confErr)
	assert.Equal(t, config.DefaultElectionPort, conf.ElectionPort)
}

func TestNodeIdDefaultsToHost(t *testing.T) {
	t.Setenv(config.NodeIdEnv, "")
	t.Setenv(config.HostEnv, "10.0.0.1")
	t.Setenv(config.PeersEnv, "10.0.0.2")

	conf, confErr := config.LoadConfig("")
	require.NoError(t, confErr)
	assert.Equal(t, "10.0.0.1", conf.NodeId)
}
