package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"
)

// Event is a received trigger.
type Event struct {
	// Action is the decoded trigger.
	Action Action

	// From is the sender's address.
	From string

	// Time is when the datagram arrived.
	Time time.Time
}

// Listener receives choreography triggers and delivers them on a channel.
type Listener struct {
	conn   *net.UDPConn
	events chan Event
	logger *slog.Logger
}

// NewListener binds the trigger port. Port 0 binds an OS-assigned
// port, which tests use to avoid clashing with a running robot.
func NewListener(port int) (*Listener, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, fmt.Errorf("broadcast: listen on %d: %w", port, err)
	}

	return &Listener{
		conn:   conn,
		events: make(chan Event, 8),
		logger: slog.Default().With("component", "broadcast.listener"),
	}, nil
}

// Events returns the channel triggers are delivered on. The channel is
// closed when Run returns.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Addr returns the bound local address.
func (l *Listener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

// Run reads datagrams until the context is cancelled. Unknown payloads
// are logged and dropped.
func (l *Listener) Run(ctx context.Context) error {
	defer close(l.events)
	defer l.conn.Close()

	buf := make([]byte, 64)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Short deadline so cancellation is noticed promptly.
		l.conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))

		n, from, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("broadcast: read failed: %w", err)
		}

		payload := string(buf[:n])
		var action Action
		switch payload {
		case payloadStart:
			action = ActionStart
		case payloadStop:
			action = ActionStop
		default:
			l.logger.Warn("unknown trigger payload",
				"payload", payload,
				"from", from.String(),
			)
			continue
		}

		l.logger.Info("trigger received",
			"action", action.String(),
			"from", from.String(),
		)

		select {
		case l.events <- Event{Action: action, From: from.String(), Time: time.Now()}:
		default:
			// Slow consumer. Drop rather than stall the socket.
		}
	}
}
