package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"flag"

	mmowire "github.com/mmonet/mmowire"
	"github.com/mmonet/mmowire/log"
	"github.com/mmonet/mmowire/message"
	"github.com/mmonet/mmowire/msg"
	"github.com/mmonet/mmowire/msg/codec"
	"github.com/mmonet/mmowire/options"
	"github.com/mmonet/mmowire/packet"
)

const opChat int8 = 0x10

type chatLine struct {
	From string `msgpack:"from"`
	Text string `msgpack:"text"`
}

func main() {
	var addr string
	flag.StringVar(&addr, "addr", "127.0.0.1:2106", "listen address")
	flag.Parse()

	// the wire core only moves opaque key bytes; the crypto lives here
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("generate key err: %v", err)
	}
	pub := elliptic.Marshal(elliptic.P256(), priv.PublicKey.X, priv.PublicKey.Y)
	digest := sha256.Sum256(pub)
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		log.Fatalf("sign public key err: %v", err)
	}

	dispatcher, err := msg.NewDispatcher(codec.NewMsgpackCodec(), packet.CompressSnappy)
	if err != nil {
		log.Fatalf("create dispatcher err: %v", err)
	}
	defer dispatcher.Close()
	err = dispatcher.Register(opChat, func() any { return &chatLine{} }, func(op int8, v any) error {
		line := v.(*chatLine)
		log.Infof("chat from %v: %v", line.From, line.Text)
		return nil
	})
	if err != nil {
		log.Fatalf("register chat handler err: %v", err)
	}

	server := mmowire.NewServer(
		mmowire.Credentials{PublicKey: pub, Signature: sig},
		options.WithChecksum(message.Checksum(16)),
		options.WithReuseAddr(true),
	)
	server.SetDispatcher(dispatcher)
	server.SetReadyHandler(func(s *mmowire.ServerSession) {
		log.Infof("session %v ready, checksum %v", s.RemoteAddr(), s.Handshake.Checksum())
	})

	log.Infof("login server listening on %v", addr)
	if err = server.ListenAndServe(addr); err != nil {
		log.Fatalf("serve err: %v", err)
	}
}
