package node

import (
	"encoding/binary"
	"net"

	"github.com/btcsuite/go-socks/socks"
)

// Client is one connection to a proof server.
type Client struct {
	con net.Conn

	// Height of the root set the server is verifying against, pushed
	// by the server on connect.
	Height int32
}

// Dial connects to a proof server, optionally through a SOCKS5 proxy.
func Dial(addr, proxyAddr string) (*Client, error) {
	var con net.Conn
	var err error
	if proxyAddr != "" {
		proxy := socks.Proxy{Addr: proxyAddr}
		con, err = proxy.Dial("tcp", addr)
	} else {
		con, err = net.Dial("tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	return NewClient(con)
}

// NewClient wraps an already-open connection and reads the server's
// height push.
func NewClient(con net.Conn) (*Client, error) {
	c := &Client{con: con}
	err := binary.Read(con, binary.BigEndian, &c.Height)
	if err != nil {
		con.Close()
		return nil, err
	}
	return c, nil
}

// Submit sends one proof request and waits for the verdict.
func (c *Client) Submit(req ProofRequest) (Verdict, error) {
	err := req.Serialize(c.con)
	if err != nil {
		return Verdict{}, err
	}
	return readVerdict(c.con)
}

// Close hangs up.
func (c *Client) Close() error {
	return c.con.Close()
}
