package protocol

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/mmonet/mmowire/message"
)

func randKey() []byte {
	b := make([]byte, 65)
	rand.Read(b)
	return b
}

func randSig() []byte {
	b := make([]byte, 70)
	rand.Read(b)
	return b
}

func TestHandshakeWalk(t *testing.T) {
	client := NewDefaultSession()
	server := NewDefaultSession()

	integrity := rand.Int63()
	now := time.Now().UnixMilli()

	hello, err := client.BeginClientHello(integrity, now)
	if err != nil {
		t.Fatalf("begin client hello err: %v", err)
	}
	if client.State() != StateAwaitingServerHello {
		t.Fatalf("client state %v", client.State())
	}
	if err = server.OnClientHello(hello); err != nil {
		t.Fatalf("on client hello err: %v", err)
	}
	if server.Integrity() != integrity || server.ClientTimestampMillis() != now {
		t.Errorf("server recovered integrity %v ts %v", server.Integrity(), server.ClientTimestampMillis())
	}

	serverKey, serverSig := randKey(), randSig()
	shello, err := server.BeginServerHello(serverKey, serverSig, message.Checksum(16))
	if err != nil {
		t.Fatalf("begin server hello err: %v", err)
	}
	if err = client.OnServerHello(shello); err != nil {
		t.Fatalf("on server hello err: %v", err)
	}
	if !bytes.Equal(client.PeerPublicKey(), serverKey) || !bytes.Equal(client.PeerSignature(), serverSig) {
		t.Errorf("client stored wrong server material")
	}
	if client.Checksum() != message.Checksum(16) {
		t.Errorf("client checksum %v", client.Checksum())
	}

	clientKey := randKey()
	ready, err := client.FinishClientReady(clientKey)
	if err != nil {
		t.Fatalf("finish client ready err: %v", err)
	}
	if !client.Complete() {
		t.Errorf("client not complete")
	}
	if err = server.OnClientReady(ready); err != nil {
		t.Fatalf("on client ready err: %v", err)
	}
	if !server.Complete() {
		t.Errorf("server not complete")
	}
	if !bytes.Equal(server.PeerPublicKey(), clientKey) {
		t.Errorf("server stored wrong client key")
	}
}

func TestHandshakeOrdering(t *testing.T) {
	var oe *OrderError

	// ClientReady before ServerHello
	client := NewDefaultSession()
	if _, err := client.BeginClientHello(1, 2); err != nil {
		t.Fatalf("begin err: %v", err)
	}
	_, err := client.FinishClientReady(randKey())
	if !errors.As(err, &oe) {
		t.Errorf("early ClientReady: want OrderError, got %v", err)
	}

	// second ClientHello on a progressed session
	server := NewDefaultSession()
	hello := &message.ClientHello{Integrity: 1, TimestampMillis: 2}
	if err := server.OnClientHello(hello); err != nil {
		t.Fatalf("on client hello err: %v", err)
	}
	if err := server.OnClientHello(hello); !errors.As(err, &oe) {
		t.Errorf("second ClientHello: want OrderError, got %v", err)
	}

	// ClientReady before ServerHello was produced
	if err := server.OnClientReady(&message.ClientReady{PublicKey: randKey()}); !errors.As(err, &oe) {
		t.Errorf("early OnClientReady: want OrderError, got %v", err)
	}

	// ServerHello out of nowhere
	fresh := NewDefaultSession()
	if err := fresh.OnServerHello(&message.ServerHello{PublicKey: randKey()}); !errors.As(err, &oe) {
		t.Errorf("unsolicited ServerHello: want OrderError, got %v", err)
	}
}

func TestBeginServerHelloChecksum(t *testing.T) {
	server := NewDefaultSession()
	if err := server.OnClientHello(&message.ClientHello{Integrity: 9, TimestampMillis: 9}); err != nil {
		t.Fatalf("on client hello err: %v", err)
	}
	_, err := server.BeginServerHello(randKey(), randSig(), message.Checksum(3))
	var ce *message.InvalidChecksumConfigError
	if !errors.As(err, &ce) {
		t.Errorf("want InvalidChecksumConfigError, got %v", err)
	}
	// session not advanced by the failed attempt
	if server.State() != StateAwaitingServerHello {
		t.Errorf("state %v after rejected checksum", server.State())
	}
}
