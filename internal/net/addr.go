package net

import (
	"fmt"
	"net"
)

// ConnectURL is the WebSocket URL front ends on the LAN should use for an
// editor listening on port.
func ConnectURL(port int) string {
	return fmt.Sprintf("ws://%s/ws", net.JoinHostPort(lanIP().String(), fmt.Sprint(port)))
}

// lanIP picks the address of the interface that routes outward. Dialing UDP
// sends no packet; without a route it falls back to the first non-loopback
// IPv4 interface address, then to loopback.
func lanIP() net.IP {
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		return conn.LocalAddr().(*net.UDPAddr).IP
	}
	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				return ipnet.IP
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}

// PortOf returns the TCP port of addr, or 0 for other address kinds.
func PortOf(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}
