// Package collector wires the session/analyzer stack to live network
// traffic: it runs as a transparent UDP/TCP forwarding proxy in front of a
// real upstream resolver, feeding both the query and the response it
// relays through the same internal/session.Session so the interpreter
// observes genuine request/reply pairs. Grounded on the teacher's
// internal/server UDP/TCP server pair (buffer pooling, SO_REUSEPORT,
// per-flow goroutine lifecycle, graceful shutdown), repurposed from
// "answer queries" to "observe and relay queries".
package collector

import (
	"context"
	"log/slog"
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/dnsglass/passivedns/internal/config"
	"github.com/dnsglass/passivedns/internal/events"
	"github.com/dnsglass/passivedns/internal/session"
)

const (
	maxUDPMessageSize = 65535
	idleSweepInterval = 10 * time.Second
)

// Collector runs the UDP and TCP collection loops.
type Collector struct {
	Logger   *slog.Logger
	Config   config.Config
	Sink     events.Sink
	Upstream string // host:port of the real resolver traffic is relayed to

	wg sync.WaitGroup
}

// RunUDP listens on addr and relays every datagram to c.Upstream,
// feeding both directions through one Session per client address.
func (c *Collector) RunUDP(ctx context.Context, addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	flows := newUDPFlowTable(c, conn)
	defer flows.closeAll()

	go flows.sweepLoop(ctx)

	buf := make([]byte, maxUDPMessageSize)
	for {
		if ctx.Err() != nil {
			return nil
		}
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		n, client, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		flows.deliver(client, data)
	}
}

// RunTCP accepts connections on addr, each proxied to c.Upstream over its
// own upstream TCP connection, with both halves fed through one Session.
// A single listener is opened, with SO_REUSEPORT set so other listeners
// may share the address.
func (c *Collector) RunTCP(ctx context.Context, addr string) error {
	ln, err := listenTCPReusePort(ctx, addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.handleTCP(ctx, conn)
		}()
	}
}

// Wait blocks until every in-flight TCP connection handler has returned.
func (c *Collector) Wait() { c.wg.Wait() }

func (c *Collector) handleTCP(ctx context.Context, client net.Conn) {
	defer client.Close()

	upstream, err := net.DialTimeout("tcp", c.Upstream, 5*time.Second)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("collector: dial upstream failed", "upstream", c.Upstream, "err", err)
		}
		return
	}
	defer upstream.Close()

	origAddr, origPort := splitHostPort(client.RemoteAddr())
	respAddr, respPort := splitHostPort(upstream.RemoteAddr())
	sess := session.New(session.TransportTCP, origAddr, origPort, respAddr, respPort, c.Config, c.Sink, c.Logger)
	defer sess.Close()

	done := make(chan struct{}, 2)
	go relay(client, upstream, sess, true, done)
	go relay(upstream, client, sess, false, done)

	select {
	case <-done:
	case <-ctx.Done():
	}
	<-done
}

// relay copies bytes from src to dst, feeding each chunk read through sess
// before forwarding it, so the interpreter sees the same bytes the
// upstream resolver sees.
func relay(src, dst net.Conn, sess *session.Session, isOrig bool, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()
	buf := make([]byte, 64*1024)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			sess.DeliverStream(chunk, isOrig)
			if _, werr := dst.Write(chunk); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func splitHostPort(addr net.Addr) (netip.Addr, uint16) {
	ap, err := netip.ParseAddrPort(addr.String())
	if err != nil {
		return netip.Addr{}, 0
	}
	return ap.Addr(), ap.Port()
}
