package mmowire

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	cmap "github.com/orcaman/concurrent-map"
	"github.com/pkg/errors"

	"github.com/mmonet/mmowire/control"
	"github.com/mmonet/mmowire/log"
	"github.com/mmonet/mmowire/message"
	"github.com/mmonet/mmowire/msg"
	"github.com/mmonet/mmowire/options"
	"github.com/mmonet/mmowire/protocol"
)

var ErrServerClosed = errors.New("mmowire: server closed")

// ServerSession is one accepted connection after its handshake
// completed.
type ServerSession struct {
	Conn      *Conn
	Handshake *protocol.Session
	RemoteKey []byte
	raddr     string
}

func (s *ServerSession) RemoteAddr() string {
	return s.raddr
}

// ReadyHandler runs once per connection when the handshake completes.
type ReadyHandler func(*ServerSession)

// Server accepts connections, runs the server side of the handshake
// and routes post-handshake application messages to a dispatcher.
// Handshake state is per connection; the session registry is the only
// cross-connection structure and is concurrency safe.
type Server struct {
	listener   net.Listener
	creds      Credentials
	options    *options.Options
	sessions   cmap.ConcurrentMap
	dispatcher *msg.Dispatcher
	onReady    ReadyHandler
	closed     int32
}

func NewServer(creds Credentials, opts ...options.Option) *Server {
	return &Server{
		creds:    creds,
		options:  options.NewOptions(opts...),
		sessions: cmap.New(),
	}
}

// SetDispatcher installs the application message dispatcher. Install
// before Serve.
func (s *Server) SetDispatcher(d *msg.Dispatcher) {
	s.dispatcher = d
}

func (s *Server) SetReadyHandler(h ReadyHandler) {
	s.onReady = h
}

func (s *Server) Listen(addr string) error {
	var ctrlOptions control.CtrlOptions
	if s.options.GetReuseAddr() {
		ctrlOptions.ReuseAddr = 1
	}
	if s.options.GetReusePort() {
		ctrlOptions.ReusePort = 1
	}
	lc := net.ListenConfig{
		Control: control.GetControl(ctrlOptions),
	}
	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

func (s *Server) ListenAndServe(addr string) error {
	if err := s.Listen(addr); err != nil {
		return err
	}
	return s.Serve()
}

func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Serve() error {
	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if atomic.LoadInt32(&s.closed) == 1 {
				return ErrServerClosed
			}
			if netErr, o := err.(net.Error); o && netErr.Temporary() {
				if delay == 0 {
					delay = 5 * time.Millisecond
				} else {
					delay *= 2
				}
				if max := 1 * time.Second; delay > max {
					delay = max
				}
				time.Sleep(delay)
				continue
			}
			return err
		}
		delay = 0
		go s.handleConn(conn)
	}
}

func (s *Server) Close() {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return
	}
	if s.listener != nil {
		s.listener.Close()
	}
}

func (s *Server) SessionCount() int {
	return s.sessions.Count()
}

func (s *Server) GetSession(raddr string) (*ServerSession, bool) {
	v, o := s.sessions.Get(raddr)
	if !o {
		return nil, false
	}
	return v.(*ServerSession), true
}

func (s *Server) handleConn(nc net.Conn) {
	defer nc.Close()

	conn := NewConn(nc, s.options)
	sess, err := s.handshake(conn)
	if err != nil {
		log.Infof("mmowire: handshake with %v failed: %v", nc.RemoteAddr(), err)
		return
	}

	ssess := &ServerSession{
		Conn:      conn,
		Handshake: sess,
		RemoteKey: sess.PeerPublicKey(),
		raddr:     nc.RemoteAddr().String(),
	}
	s.sessions.Set(ssess.raddr, ssess)
	defer s.sessions.Remove(ssess.raddr)

	if s.onReady != nil {
		s.onReady(ssess)
	}
	s.serveSession(ssess)
}

// handshake runs the server side of the three step sequence on one
// connection. Any violation aborts and the connection is dropped.
func (s *Server) handshake(conn *Conn) (*protocol.Session, error) {
	sess := protocol.NewSession(s.options.GetObfuscation())

	m, err := conn.ReadMessage()
	if err != nil {
		return nil, errors.Wrap(err, "read client hello")
	}
	hello, err := message.As[*message.ClientHello](m)
	if err != nil {
		return nil, err
	}
	if err = sess.OnClientHello(hello); err != nil {
		return nil, err
	}

	shello, err := sess.BeginServerHello(s.creds.PublicKey, s.creds.Signature, s.options.GetChecksum())
	if err != nil {
		return nil, err
	}
	if err = conn.WriteMessage(shello); err != nil {
		return nil, errors.Wrap(err, "write server hello")
	}

	m, err = conn.ReadMessage()
	if err != nil {
		return nil, errors.Wrap(err, "read client ready")
	}
	ready, err := message.As[*message.ClientReady](m)
	if err != nil {
		return nil, err
	}
	if err = sess.OnClientReady(ready); err != nil {
		return nil, err
	}
	return sess, nil
}

// serveSession pumps post-handshake application messages into the
// dispatcher until the peer goes away or a message fails.
func (s *Server) serveSession(ssess *ServerSession) {
	for {
		m, err := ssess.Conn.ReadMessage()
		if err != nil {
			if atomic.LoadInt32(&s.closed) == 0 {
				log.Infof("mmowire: session %v read: %v", ssess.raddr, err)
			}
			return
		}
		if s.dispatcher == nil {
			log.Infof("mmowire: session %v: no dispatcher, dropping opcode %#02x", ssess.raddr, uint8(m.Opcode()))
			continue
		}
		if err = s.dispatcher.Dispatch(m); err != nil {
			log.Infof("mmowire: session %v dispatch: %v", ssess.raddr, err)
			return
		}
	}
}
