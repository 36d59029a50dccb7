//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package multicast

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseControl выставляет SO_REUSEADDR/SO_REUSEPORT до bind, чтобы несколько
// процессов на одной машине могли слушать один порт группы
func reuseControl(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		if sockErr != nil {
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
