// Package node is the network face of the verifier: a TCP server
// that answers batch proof submissions against a committed root set,
// and the client that submits them.
package node

import (
	"encoding/binary"
	"io"
	"net"

	"github.com/larkmoor/forestproof/accumulator"
	"github.com/larkmoor/forestproof/rootstore"
)

// Server verifies proof requests against one committed accumulator
// state.  It holds only the root set; the forest itself stays with
// whoever generated the proofs.
type Server struct {
	height int32
	state  rootstore.RootSet
}

// NewServer loads the best committed root set out of the store.
func NewServer(store *rootstore.Store) (*Server, error) {
	height, state, err := store.Best()
	if err != nil {
		return nil, err
	}
	log.Infof("serving root set of height %d: %d leaves, %d roots",
		height, state.NumLeaves, len(state.Roots))
	return &Server{height: height, state: state}, nil
}

// NewServerAt serves a fixed root set directly, without a store.
func NewServerAt(height int32, state rootstore.RootSet) *Server {
	return &Server{height: height, state: state}
}

// Listen accepts connections on addr and serves verdicts until a
// halt request arrives.  Replies on haltAccept once the listener is
// down.
func (s *Server) Listen(addr string, haltRequest, haltAccept chan bool) error {
	listenAdr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return err
	}
	listener, err := net.ListenTCP("tcp", listenAdr)
	if err != nil {
		return err
	}
	log.Infof("listening on %s", listener.Addr().String())

	cons := make(chan net.Conn)
	go acceptConnections(listener, cons)

	for {
		select {
		case <-haltRequest:
			listener.Close()
			haltAccept <- true
			close(cons)
			return nil
		case con := <-cons:
			go s.serveVerdictsWorker(con)
		}
	}
}

func acceptConnections(listener *net.TCPListener, cons chan net.Conn) {
	for {
		select {
		case <-cons:
			// cons got closed, stop accepting new connections
			return
		default:
		}

		con, err := listener.Accept()
		if err != nil {
			log.Warnf("accept error: %s", err.Error())
			return
		}

		cons <- con
	}
}

// serveVerdictsWorker answers proof requests on one connection until
// the remote side hangs up.
func (s *Server) serveVerdictsWorker(c net.Conn) {
	defer c.Close()
	log.Debugf("start serving %s", c.RemoteAddr().String())

	// first thing is push the height of the root set being served so
	// the remote knows what state it's proving against
	err := binary.Write(c, binary.BigEndian, s.height)
	if err != nil {
		log.Warnf("height push: %s", err.Error())
		return
	}

	for {
		var req ProofRequest
		err = req.Deserialize(c)
		if err != nil {
			if err != io.EOF {
				log.Warnf("request read: %s", err.Error())
			}
			break
		}

		verdict := s.Check(req)
		if verdict.Accept {
			log.Debugf("%s: accepted proof of %d leaves",
				c.RemoteAddr().String(), len(req.Leaves))
		} else {
			log.Infof("%s: rejected proof of %d leaves: %s",
				c.RemoteAddr().String(), len(req.Leaves), verdict.Reason)
		}

		err = writeVerdict(c, verdict)
		if err != nil {
			log.Warnf("verdict write: %s", err.Error())
			break
		}
	}
	log.Debugf("hung up on %s", c.RemoteAddr().String())
}

// Check verifies one proof request against the served root set.
func (s *Server) Check(req ProofRequest) Verdict {
	err := accumulator.VerifyRoots(
		s.state.Roots, s.state.NumLeaves, req.Proof, req.LeafHashes())
	if err != nil {
		return Verdict{Accept: false, Reason: err.Error()}
	}
	return Verdict{Accept: true}
}
