package main

import "flag"

import "github.com/sirgallo/syncpay/pkg/config"
import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/httpservice"
import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/service"


const NAME = "Main"
var Log = clog.NewCustomLog(NAME)


func main() {
	envFile := flag.String("env", "", "optional dotenv file with node configuration")
	flag.Parse()

	conf, confErr := config.LoadConfig(*envFile)
	if confErr != nil { Log.Fatal("unable to load configuration:", confErr.Error()) }

	syncpayOpts := &service.SyncPayServiceOpts{
		Protocol: "tcp",
		Ports: service.SyncPayPortOpts{
			LeaderElection: conf.ElectionPort,
			Replication: conf.ReplicationPort,
			Probe: conf.ProbePort,
		},
		Host: conf.Host,
		NodeId: conf.NodeId,
		Peers: conf.Peers,
		StorePath: conf.StorePath,
		ConnPoolOpts: connpool.ConnectionPoolOpts{ MaxConn: conf.MaxConnections },
		ElectionTimeoutMinInMs: conf.ElectionTimeoutMinInMs,
		ElectionTimeoutMaxInMs: conf.ElectionTimeoutMaxInMs,
		HeartbeatIntervalInMs: conf.HeartbeatIntervalInMs,
		ReplicationTimeoutInMs: conf.ReplicationTimeoutInMs,
		MaxTransactionAmount: conf.MaxTransactionAmount,
		PingIntervalInMs: conf.PingIntervalInMs,
		FailureThreshold: conf.FailureThreshold,
		ClockProbeIntervalInMs: conf.ClockProbeIntervalInMs,
	}

	syncpay := service.NewSyncPayService(syncpayOpts)

	httpOpts := &httpservice.HTTPServiceOpts{
		Port: conf.HTTPPort,
		Node: syncpay,
	}

	http := httpservice.NewHTTPService(httpOpts)

	go syncpay.StartSyncPayService()
	go http.StartHTTPService()

	select{}
}
