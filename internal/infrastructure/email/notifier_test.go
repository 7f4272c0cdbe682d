package email

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A server that accepts the connection and then goes silent. The send
// must error out on its own deadline instead of hanging the caller.
func TestSend_UnresponsiveServerFailsWithinDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		// Never sends the greeting; returns once the client hangs up.
		_, _ = conn.Read(make([]byte, 1))
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	n := &smtpNotifier{
		addr:    net.JoinHostPort(host, port),
		from:    "noreply@anviboutique.in",
		host:    host,
		timeout: 200 * time.Millisecond,
	}

	start := time.Now()
	err = n.SendOTP(context.Background(), "a@b.in", PurposeRegistration, "123456", 5)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestSend_UnreachableServerFailsFast(t *testing.T) {
	// A listener closed before the dial guarantees a refused connection.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	n := &smtpNotifier{
		addr:    addr,
		from:    "noreply@anviboutique.in",
		timeout: 200 * time.Millisecond,
	}

	err = n.SendContact(context.Background(), "Anvi", "a@b.in", "hello")
	require.Error(t, err)
	assert.ErrorContains(t, err, "send mail to")
}
