package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
)

// maxPort is the largest valid TCP port.
const maxPort = 65535

// ErrInvalidPort is returned for ports outside 0..65535.
var ErrInvalidPort = errors.New("invalid port")

// ListenLocal binds a TCP listener on host:port. Port 0 lets the kernel pick a free port.
// Connections are queued by the kernel as soon as this returns, before anyone calls Accept.
func ListenLocal(ctx context.Context, host string, port int) (net.Listener, error) {
	if port < 0 || port > maxPort {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}

	var lc net.ListenConfig

	address := net.JoinHostPort(host, strconv.Itoa(port))

	listener, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	return listener, nil
}

// ListenerPort returns the TCP port the listener is bound to, or 0 for non-TCP listeners.
func ListenerPort(listener net.Listener) int {
	if addr, ok := listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}

	return 0
}
