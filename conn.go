package mmowire

import (
	"bufio"
	"io"
	"net"
	"time"

	"github.com/mmonet/mmowire/message"
	"github.com/mmonet/mmowire/options"
	"github.com/mmonet/mmowire/packet"
)

// Conn is a typed message stream over a duplex byte stream: union
// codec plus length-prefixed framing, one in-flight message at a time.
// It is synchronous and owned by one goroutine per direction at most;
// the handshake uses it strictly sequentially.
type Conn struct {
	rw      io.ReadWriter
	br      *bufio.Reader
	bw      *bufio.Writer
	codec   *message.Codec
	options *options.Options
}

func NewConn(rw io.ReadWriter, ops *options.Options) *Conn {
	if ops == nil {
		ops = options.NewOptions()
	}
	return &Conn{
		rw:      rw,
		br:      bufio.NewReaderSize(rw, ops.GetReadBuffSize()),
		bw:      bufio.NewWriterSize(rw, ops.GetWriteBuffSize()),
		codec:   message.NewCodec(ops.GetObfuscation(), ops.GetCatchAll()),
		options: ops,
	}
}

// WriteMessage encodes m, frames it and flushes.
func (c *Conn) WriteMessage(m message.Message) error {
	data, err := c.codec.Encode(m)
	if err != nil {
		return err
	}
	if d := c.options.GetWriteTimeout(); d > 0 {
		if nc, o := c.rw.(net.Conn); o {
			nc.SetWriteDeadline(time.Now().Add(d))
		}
	}
	if err = packet.Write(c.bw, data); err != nil {
		return err
	}
	return c.bw.Flush()
}

// ReadMessage reads one full frame then decodes it. Stream failures
// surface as io errors; malformed payloads as the codec's typed
// errors.
func (c *Conn) ReadMessage() (message.Message, error) {
	if d := c.options.GetReadTimeout(); d > 0 {
		if nc, o := c.rw.(net.Conn); o {
			nc.SetReadDeadline(time.Now().Add(d))
		}
	}
	data, err := packet.Read(c.br)
	if err != nil {
		return nil, err
	}
	return c.codec.Decode(data)
}
