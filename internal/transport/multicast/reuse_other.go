//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package multicast

import "syscall"

// на остальных платформах reuse не выставляется, второй процесс на том же порту получит ErrBindFailure
func reuseControl(network, address string, c syscall.RawConn) error {
	return nil
}
