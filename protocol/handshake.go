package protocol

import (
	"fmt"

	"github.com/mmonet/mmowire/message"
)

type State int32

const (
	StateStart               State = iota
	StateAwaitingServerHello State = 1
	StateAwaitingClientReady State = 2
	StateComplete            State = 3
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateAwaitingServerHello:
		return "awaiting_server_hello"
	case StateAwaitingClientReady:
		return "awaiting_client_ready"
	case StateComplete:
		return "complete"
	}
	return "invalid"
}

// OrderError reports a handshake message produced or accepted out of
// sequence. There is no failed state: the caller drops the connection.
type OrderError struct {
	State State
	Op    int8
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("mmowire: opcode %#02x out of order in handshake state %v", uint8(e.Op), e.State)
}

// Session is the per-connection handshake state. It is owned by a
// single connection and never shared; all methods are meant for one
// goroutine. Both sides move Start -> AwaitingServerHello ->
// AwaitingClientReady -> Complete, the client via Begin/On/Finish and
// the server via the matching On/Begin/On sequence.
type Session struct {
	state State
	obf   message.Obfuscation

	checksum  message.Checksum
	integrity int64
	clientMs  int64

	localKey []byte
	peerKey  []byte
	peerSig  []byte
}

func NewSession(obf message.Obfuscation) *Session {
	return &Session{obf: obf}
}

func NewDefaultSession() *Session {
	return NewSession(message.DefaultObfuscation())
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Complete() bool {
	return s.state == StateComplete
}

func (s *Session) Obfuscation() message.Obfuscation {
	return s.obf
}

// Checksum is the negotiated checksum size selector, valid once the
// ServerHello has been produced or accepted.
func (s *Session) Checksum() message.Checksum {
	return s.checksum
}

// Integrity is the client's random value recovered from (or placed
// into) the ClientHello.
func (s *Session) Integrity() int64 {
	return s.integrity
}

// ClientTimestampMillis is the client's clock recovered from the
// ClientHello (server side).
func (s *Session) ClientTimestampMillis() int64 {
	return s.clientMs
}

func (s *Session) LocalPublicKey() []byte {
	return s.localKey
}

// PeerPublicKey is the other party's public key material, opaque
// bytes in SEC1 form. Set at Complete (server side) or at
// AwaitingClientReady (client side).
func (s *Session) PeerPublicKey() []byte {
	return s.peerKey
}

// PeerSignature is the server's DER signature over its public key.
// It is stored, never verified here; verify it against a trusted key
// before trusting the handshake.
func (s *Session) PeerSignature() []byte {
	return s.peerSig
}

// BeginClientHello produces the opening message (client side).
// integrity should come from a cryptographically random source.
func (s *Session) BeginClientHello(integrity, timestampMillis int64) (*message.ClientHello, error) {
	if s.state != StateStart {
		return nil, &OrderError{State: s.state, Op: message.OpClientHello}
	}
	s.integrity = integrity
	s.clientMs = timestampMillis
	s.state = StateAwaitingServerHello
	return &message.ClientHello{Integrity: integrity, TimestampMillis: timestampMillis}, nil
}

// OnClientHello accepts the opening message (server side). A second
// ClientHello on a progressed session is an ordering violation.
func (s *Session) OnClientHello(m *message.ClientHello) error {
	if s.state != StateStart {
		return &OrderError{State: s.state, Op: message.OpClientHello}
	}
	s.integrity = m.Integrity
	s.clientMs = m.TimestampMillis
	s.state = StateAwaitingServerHello
	return nil
}

// BeginServerHello produces the reply (server side). publicKey and
// signature are opaque, externally produced byte encodings.
func (s *Session) BeginServerHello(publicKey, signature []byte, checksum message.Checksum) (*message.ServerHello, error) {
	if s.state != StateAwaitingServerHello {
		return nil, &OrderError{State: s.state, Op: message.OpServerHello}
	}
	if !checksum.Valid() {
		return nil, &message.InvalidChecksumConfigError{Value: int8(checksum)}
	}
	s.localKey = publicKey
	s.checksum = checksum
	s.state = StateAwaitingClientReady
	return &message.ServerHello{PublicKey: publicKey, Signature: signature, ChecksumSize: checksum}, nil
}

// OnServerHello accepts the reply (client side).
func (s *Session) OnServerHello(m *message.ServerHello) error {
	if s.state != StateAwaitingServerHello {
		return &OrderError{State: s.state, Op: message.OpServerHello}
	}
	s.peerKey = m.PublicKey
	s.peerSig = m.Signature
	s.checksum = m.ChecksumSize
	s.state = StateAwaitingClientReady
	return nil
}

// FinishClientReady produces the closing message (client side).
// ClientReady must not be sent before the ServerHello was accepted.
func (s *Session) FinishClientReady(publicKey []byte) (*message.ClientReady, error) {
	if s.state != StateAwaitingClientReady {
		return nil, &OrderError{State: s.state, Op: message.OpClientReady}
	}
	s.localKey = publicKey
	s.state = StateComplete
	return &message.ClientReady{PublicKey: publicKey}, nil
}

// OnClientReady accepts the closing message (server side).
func (s *Session) OnClientReady(m *message.ClientReady) error {
	if s.state != StateAwaitingClientReady {
		return &OrderError{State: s.state, Op: message.OpClientReady}
	}
	s.peerKey = m.PublicKey
	s.state = StateComplete
	return nil
}
