package utils

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestListenLocal tests binding local listeners.
func TestListenLocal(t *testing.T) {
	t.Parallel()

	t.Run("zero picks a free port", func(t *testing.T) {
		t.Parallel()

		listener, err := ListenLocal(t.Context(), "127.0.0.1", 0)
		require.NoError(t, err)

		defer listener.Close() //nolint:errcheck // Test cleanup.

		port := ListenerPort(listener)
		assert.Positive(t, port)

		conn, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
		require.NoError(t, err, "a bound listener must accept connections before Accept is called")
		require.NoError(t, conn.Close())
	})

	t.Run("busy port fails", func(t *testing.T) {
		t.Parallel()

		first, err := ListenLocal(t.Context(), "127.0.0.1", 0)
		require.NoError(t, err)

		defer first.Close() //nolint:errcheck // Test cleanup.

		_, err = ListenLocal(t.Context(), "127.0.0.1", ListenerPort(first))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to listen on")
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		for _, port := range []int{-1, 65536} {
			_, err := ListenLocal(t.Context(), "127.0.0.1", port)
			require.ErrorIs(t, err, ErrInvalidPort)
		}
	})
}
