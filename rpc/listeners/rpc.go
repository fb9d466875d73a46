// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/counter"
	"github.com/gelephu/landd/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// Listener - interface for listener setup
type Listener interface {
	Serve() error
	Stop()
}

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// the argument passed to the connection callback
type serverArgument struct {
	log    *logger.L
	server *rpc.Server
	count  *counter.Counter
}

type rpcListener struct {
	log      *logger.L
	multi    *listener.MultiListener
	argument *serverArgument
}

// NewRPC - create a TLS listener for JSON RPC clients
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfiguration *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	limiter := listener.NewLimiter(int(configuration.MaximumConnections))

	multi, err := listener.NewMultiListener(logName, configuration.Listen, tlsConfiguration, limiter, callback)
	if nil != err {
		log.Errorf("invalid %s listen addresses", logName)
		return nil, err
	}

	r := &rpcListener{
		log:   log,
		multi: multi,
		argument: &serverArgument{
			log:    log,
			server: server,
			count:  count,
		},
	}

	return r, nil
}

// Serve - start accepting connections
func (r *rpcListener) Serve() error {
	r.log.Info("starting…")
	r.multi.Start(r.argument)
	return nil
}

// Stop - shut down the listener
func (r *rpcListener) Stop() {
	r.multi.Stop()
}

// connection callback
func callback(conn io.ReadWriteCloser, argument interface{}) {

	serverArgument := argument.(*serverArgument)

	log := serverArgument.log
	log.Info("new connection")

	serverArgument.count.Increment()
	defer serverArgument.count.Decrement()

	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	serverArgument.server.ServeCodec(codec)

	log.Info("connection closed")
}
