package sink

import (
	"fmt"
	"net"

	"igc2csv/internal/nmea"
	"igc2csv/internal/track"
)

type udpConn interface {
	Write(p []byte) (int, error)
	Close() error
}

type resolveUDPAddrFunc func(network, address string) (*net.UDPAddr, error)

type dialUDPFunc func(network string, laddr, raddr *net.UDPAddr) (udpConn, error)

// UDP sends each row as one datagram holding its GGA and RMC sentences.
type UDP struct {
	dest string
	conn udpConn
}

func NewUDP(dest string) (*UDP, error) {
	return newUDP(dest, net.ResolveUDPAddr, func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return net.DialUDP(network, laddr, raddr)
	})
}

func newUDP(dest string, resolve resolveUDPAddrFunc, dial dialUDPFunc) (*UDP, error) {
	addr, err := resolve("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve dest: %w", err)
	}

	// DialUDP selects a suitable local address automatically.
	conn, err := dial("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp: %w", err)
	}

	return &UDP{
		dest: dest,
		conn: conn,
	}, nil
}

func (u *UDP) Send(r track.Row) error {
	return u.send(nmea.Lines(r))
}

func (u *UDP) send(payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	_, err := u.conn.Write(payload)
	return err
}

func (u *UDP) Close() error {
	if u.conn == nil {
		return nil
	}
	return u.conn.Close()
}
