package collector

import (
	"context"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// listenTCPReusePort opens a TCP listener with SO_REUSEPORT set, the same
// construction the teacher's internal/server/tcp_server.go uses so
// multiple collector processes (or a future multi-listener collector) can
// share one address across cores.
func listenTCPReusePort(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			return c.Control(func(fd uintptr) {
				_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
			})
		},
	}
	return lc.Listen(ctx, "tcp", addr)
}
