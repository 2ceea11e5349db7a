package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"flag"

	mmowire "github.com/mmonet/mmowire"
	"github.com/mmonet/mmowire/log"
	"github.com/mmonet/mmowire/msg"
	"github.com/mmonet/mmowire/msg/codec"
	"github.com/mmonet/mmowire/packet"
)

const opChat int8 = 0x10

type chatLine struct {
	From string `msgpack:"from"`
	Text string `msgpack:"text"`
}

func main() {
	var addr string
	flag.StringVar(&addr, "addr", "127.0.0.1:2106", "server address")
	flag.Parse()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("generate key err: %v", err)
	}
	pub := elliptic.Marshal(elliptic.P256(), priv.PublicKey.X, priv.PublicKey.Y)

	client, nc, err := mmowire.Dial(addr)
	if err != nil {
		log.Fatalf("dial %v err: %v", addr, err)
	}
	defer nc.Close()

	sess, err := client.Handshake(mmowire.Credentials{PublicKey: pub})
	if err != nil {
		log.Fatalf("handshake err: %v", err)
	}
	log.Infof("handshake complete, checksum %v", sess.Checksum())

	// The handshake only transports the signature. A deployment pins a
	// trusted key and verifies against that; here the server key signs
	// itself, so use it directly.
	x, y := elliptic.Unmarshal(elliptic.P256(), sess.PeerPublicKey())
	if x == nil {
		log.Fatalf("server sent an invalid public key point")
	}
	serverKey := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
	digest := sha256.Sum256(sess.PeerPublicKey())
	if !ecdsa.VerifyASN1(serverKey, digest[:], sess.PeerSignature()) {
		log.Fatalf("server signature did not verify")
	}
	log.Info("server signature verified")

	dispatcher, err := msg.NewDispatcher(codec.NewMsgpackCodec(), packet.CompressSnappy)
	if err != nil {
		log.Fatalf("create dispatcher err: %v", err)
	}
	defer dispatcher.Close()

	chat, err := dispatcher.Encode(opChat, &chatLine{From: "trainer", Text: "ready to battle"})
	if err != nil {
		log.Fatalf("encode chat err: %v", err)
	}
	if err = client.Conn().WriteMessage(chat); err != nil {
		log.Fatalf("send chat err: %v", err)
	}
	log.Info("chat sent")
}
