package control

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// GetControl builds a net.ListenConfig control function applying the
// requested socket options before bind. SO_REUSEPORT does not exist
// here.
func GetControl(options CtrlOptions) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) (err error) {
		e := c.Control(func(fd uintptr) {
			if options.ReuseAddr != 0 {
				err = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, options.ReuseAddr)
			}
		})
		if e != nil {
			return e
		}
		return
	}
}
