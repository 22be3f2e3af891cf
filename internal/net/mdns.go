package net

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service under which editors advertise.
const ServiceType = "_ishigrid._tcp"

// Advertiser announces a running editor on the local network.
type Advertiser struct {
	server *mdns.Server
}

// Advertise publishes an editor listening on port. An empty instance name
// uses the host name.
func Advertise(instance string, port int) (*Advertiser, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	service, err := mdns.NewMDNSService(
		instance,
		ServiceType,
		"", // .local
		"", // OS host name
		port,
		nil, // all interface addresses
		[]string{"IshiGrid", "path=/ws"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return &Advertiser{server: server}, nil
}

// Close withdraws the announcement.
func (a *Advertiser) Close() error {
	return a.server.Shutdown()
}

// Editor is an editor found on the network.
type Editor struct {
	Name string
	Addr string
}

// URL returns the WebSocket endpoint of the editor.
func (e Editor) URL() string {
	return "ws://" + e.Addr + "/ws"
}

// Browse looks for editors until timeout elapses or ctx is done and reports
// each one to found.
func Browse(ctx context.Context, timeout time.Duration, found func(Editor)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(Editor{Name: e.Name, Addr: fmt.Sprintf("%s:%d", e.AddrV4, e.Port)})
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.DisableIPv6 = true
	params.Timeout = timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < params.Timeout {
			params.Timeout = left
		}
	}

	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS query: %w", err)
	}
	return ctx.Err()
}
