// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/messagebus"
)

// sends queued events out on the PUB socket
type broadcaster struct {
	log    *logger.L
	socket *zmq.Socket
}

// bind the PUB socket to all broadcast addresses
func (brdc *broadcaster) initialise(addresses []string) error {

	log := logger.New("broadcaster")
	brdc.log = log

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return err
	}

	_ = socket.SetLinger(0)
	_ = socket.SetSndhwm(messageQueueDepth)

	for _, address := range addresses {
		log.Infof("bind to: %q", address)
		err = socket.Bind(address)
		if nil != err {
			log.Errorf("bind to: %q  error: %s", address, err)
			socket.Close()
			return err
		}
	}

	brdc.socket = socket
	return nil
}

// high water mark for undelivered events per subscriber
const messageQueueDepth = 1000

// Run - drain the message queue to the socket
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case m := <-messagebus.Chan():
			payload, err := json.Marshal(m.Item)
			if nil != err {
				log.Errorf("event: %q marshal error: %s", m.From, err)
				continue loop
			}
			log.Debugf("publish: %q %s", m.From, payload)
			_, err = brdc.socket.SendMessage(m.From, payload)
			if nil != err {
				log.Errorf("event: %q send error: %s", m.From, err)
			}
		}
	}

	brdc.socket.Close()
	brdc.socket = nil
	log.Info("stopped")
}
