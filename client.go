package mmowire

import (
	"io"
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/mmonet/mmowire/message"
	"github.com/mmonet/mmowire/options"
	"github.com/mmonet/mmowire/protocol"
)

// Credentials carries externally produced key material. The codec
// treats both fields as opaque bytes: PublicKey is expected to be a
// SEC1 encoded point, Signature a DER signature over PublicKey
// (servers only).
type Credentials struct {
	PublicKey []byte
	Signature []byte
}

// Client drives the client side of the handshake over one connection.
type Client struct {
	conn    *Conn
	sess    *protocol.Session
	options *options.Options
}

func NewClient(rw io.ReadWriter, opts ...options.Option) *Client {
	ops := options.NewOptions(opts...)
	return &Client{
		conn:    NewConn(rw, ops),
		sess:    protocol.NewSession(ops.GetObfuscation()),
		options: ops,
	}
}

// Dial connects and returns a client ready to handshake.
func Dial(addr string, opts ...options.Option) (*Client, net.Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	return NewClient(nc, opts...), nc, nil
}

// Conn exposes the typed stream for post-handshake traffic.
func (c *Client) Conn() *Conn {
	return c.conn
}

func (c *Client) Session() *protocol.Session {
	return c.sess
}

// Handshake runs ClientHello / ServerHello / ClientReady. On return
// the session is Complete and carries the server's public key and
// signature; verifying that signature against a trusted key is the
// caller's job. Any error aborts the sequence and the caller should
// drop the connection.
func (c *Client) Handshake(creds Credentials) (*protocol.Session, error) {
	integrity, err := c.options.GetRandInt64()()
	if err != nil {
		return nil, errors.Wrap(err, "mmowire: draw integrity value")
	}
	hello, err := c.sess.BeginClientHello(integrity, time.Now().UnixMilli())
	if err != nil {
		return nil, err
	}
	if err = c.conn.WriteMessage(hello); err != nil {
		return nil, errors.Wrap(err, "mmowire: write client hello")
	}

	m, err := c.conn.ReadMessage()
	if err != nil {
		return nil, errors.Wrap(err, "mmowire: read server hello")
	}
	shello, err := message.As[*message.ServerHello](m)
	if err != nil {
		return nil, err
	}
	if err = c.sess.OnServerHello(shello); err != nil {
		return nil, err
	}

	ready, err := c.sess.FinishClientReady(creds.PublicKey)
	if err != nil {
		return nil, err
	}
	if err = c.conn.WriteMessage(ready); err != nil {
		return nil, errors.Wrap(err, "mmowire: write client ready")
	}
	return c.sess, nil
}
