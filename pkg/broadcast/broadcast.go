// Package broadcast triggers choreography across robots on the local
// network. A single UDP datagram to the broadcast address starts or
// stops every listening robot at once, with no pairing or discovery.
package broadcast

import (
	"fmt"
	"net"
)

// DefaultPort is the UDP port robots listen on.
const DefaultPort = 6001

// Wire payloads. One byte keeps the datagram trivially parseable on
// the microcontroller side.
const (
	payloadStart = "1"
	payloadStop  = "0"
)

// Action identifies a received trigger.
type Action int

const (
	// ActionStop halts the running choreography.
	ActionStop Action = iota

	// ActionStart begins the choreography.
	ActionStart
)

// String returns the action name.
func (a Action) String() string {
	if a == ActionStart {
		return "start"
	}
	return "stop"
}

// Sender emits start/stop triggers to all robots on the subnet.
type Sender struct {
	conn *net.UDPConn
	addr *net.UDPAddr
}

// NewSender opens a broadcast socket targeting the given port.
func NewSender(port int) (*Sender, error) {
	if port == 0 {
		port = DefaultPort
	}

	addr := &net.UDPAddr{
		IP:   net.IPv4bcast,
		Port: port,
	}

	conn, err := net.DialUDP("udp4", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("broadcast: dial failed: %w", err)
	}

	return &Sender{conn: conn, addr: addr}, nil
}

// NewSenderTo opens a socket targeting a specific address instead of
// the broadcast address. Used by tests and single-robot setups.
func NewSenderTo(addr string) (*Sender, error) {
	udpAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("broadcast: resolve %s: %w", addr, err)
	}

	conn, err := net.DialUDP("udp4", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("broadcast: dial failed: %w", err)
	}

	return &Sender{conn: conn, addr: udpAddr}, nil
}

// SendStart triggers choreography on all listening robots.
func (s *Sender) SendStart() error {
	return s.send(payloadStart)
}

// SendStop halts choreography on all listening robots.
func (s *Sender) SendStop() error {
	return s.send(payloadStop)
}

// Send emits the trigger for an action.
func (s *Sender) Send(action Action) error {
	if action == ActionStart {
		return s.SendStart()
	}
	return s.SendStop()
}

func (s *Sender) send(payload string) error {
	if _, err := s.conn.Write([]byte(payload)); err != nil {
		return fmt.Errorf("broadcast: send to %s: %w", s.addr, err)
	}
	return nil
}

// Close releases the socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}
