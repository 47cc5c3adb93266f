package connpool

import "errors"

import "google.golang.org/grpc"
import "google.golang.org/grpc/connectivity"
import "google.golang.org/grpc/credentials/insecure"

import "github.com/sirgallo/syncpay/pkg/codec"


//=========================================== Connection Pool


/*
	the connection pool reuses grpc client connections per peer host, minimizing
	the overhead of redialing a peer every time an rpc is made

	structure:
		{
			[key: peer host]: Array<connections>
		}

	connections are dialed with the cbor content subtype so every rpc through a
	pooled connection marshals with the shared codec
*/

func NewConnectionPool(opts ConnectionPoolOpts) *ConnectionPool {
	return &ConnectionPool{
		maxConn: opts.MaxConn,
	}
}

/*
	Get Connection:
		1.) load connections for the particular host
		2.) if the host was loaded from the thread safe map:
			if the total connections for the host is at max --> return max connections error
			otherwise return the first connection that is non nil and in the Ready state
		3.) otherwise, dial the host and store the new connection at the key associated
			with the host, returning the new connection
*/

func (cp *ConnectionPool) GetConnection(host string, port string) (*grpc.ClientConn, error) {
	connections, loaded := cp.connections.Load(host)
	if loaded {
		for _, conn := range connections.([]*grpc.ClientConn) {
			if conn != nil && conn.GetState() == connectivity.Ready { return conn, nil }
		}

		if len(connections.([]*grpc.ClientConn)) >= cp.maxConn { return nil, errors.New("max connections reached for host " + host) }
	}

	newConn, connErr := grpc.Dial(
		host + port,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codec.Name)),
	)

	if connErr != nil { return nil, connErr }

	existing, loaded := cp.connections.LoadOrStore(host, []*grpc.ClientConn{newConn})
	if loaded {
		connections := existing.([]*grpc.ClientConn)
		cp.connections.Store(host, append(connections, newConn))
	}

	return newConn, nil
}

/*
	Put Connection:
		1.) if the connection is tracked in the pool, leave it open for reuse
		2.) otherwise it is an untracked connection, so close it
*/

func (cp *ConnectionPool) PutConnection(host string, connection *grpc.ClientConn) (bool, error) {
	connections, loaded := cp.connections.Load(host)
	if loaded {
		for _, conn := range connections.([]*grpc.ClientConn) {
			if conn == connection { return true, nil }
		}
	}

	closeErr := connection.Close()
	if closeErr != nil { return false, closeErr }

	return false, nil
}

/*
	Close Connections:
		close every pooled connection --> used on node shutdown
*/

func (cp *ConnectionPool) CloseConnections() error {
	var lastErr error

	cp.connections.Range(func(key, value interface{}) bool {
		for _, conn := range value.([]*grpc.ClientConn) {
			if conn != nil {
				closeErr := conn.Close()
				if closeErr != nil { lastErr = closeErr }
			}
		}

		cp.connections.Delete(key)
		return true
	})

	return lastErr
}
