package collector

import (
	"context"
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/dnsglass/passivedns/internal/pool"
	"github.com/dnsglass/passivedns/internal/session"
)

// upstreamBufPool reduces allocations for per-flow upstream reads: each
// flow's upstream reader goroutine holds one pooled buffer for its whole
// life rather than allocating one per datagram. Grounded on
// the teacher's bufferPool in internal/server/udp_server.go.
var upstreamBufPool = pool.New(func() *[]byte {
	buf := make([]byte, maxUDPMessageSize)
	return &buf
})

// udpFlow is one client's view of the proxy: its own socket to the
// upstream resolver (so replies can be told apart from other clients'),
// and the Session observing both directions.
type udpFlow struct {
	upstream *net.UDPConn
	sess     *session.Session
}

// udpFlowTable tracks one udpFlow per client address, mirroring how the
// original analyzer keys a UDP "connection" by its 4-tuple even though UDP
// itself has no connection state.
type udpFlowTable struct {
	c        *Collector
	clientLn *net.UDPConn

	mu    sync.Mutex
	flows map[netip.AddrPort]*udpFlow
}

func newUDPFlowTable(c *Collector, clientLn *net.UDPConn) *udpFlowTable {
	return &udpFlowTable{c: c, clientLn: clientLn, flows: make(map[netip.AddrPort]*udpFlow)}
}

// deliver feeds one client-originated datagram to that client's flow,
// creating the flow (and dialing upstream) on first sight.
func (t *udpFlowTable) deliver(client *net.UDPAddr, data []byte) {
	key, ok := netip.AddrFromSlice(client.IP)
	if !ok {
		return
	}
	ap := netip.AddrPortFrom(key.Unmap(), uint16(client.Port))

	t.mu.Lock()
	flow, exists := t.flows[ap]
	if !exists {
		f, err := t.newFlow(ap)
		if err != nil {
			t.mu.Unlock()
			return
		}
		flow = f
		t.flows[ap] = flow
		go t.pumpUpstream(ap, flow)
	}
	t.mu.Unlock()

	flow.sess.DeliverStream(data, true)
	_, _ = flow.upstream.Write(data)
}

func (t *udpFlowTable) newFlow(client netip.AddrPort) (*udpFlow, error) {
	upstreamAddr, err := net.ResolveUDPAddr("udp", t.c.Upstream)
	if err != nil {
		return nil, err
	}
	up, err := net.DialUDP("udp", nil, upstreamAddr)
	if err != nil {
		return nil, err
	}
	respAddr, respPort := splitHostPort(up.RemoteAddr())
	sess := session.New(session.TransportUDP, client.Addr(), client.Port(), respAddr, respPort, t.c.Config, t.c.Sink, t.c.Logger)
	return &udpFlow{upstream: up, sess: sess}, nil
}

// pumpUpstream relays responses from one client's upstream socket back to
// the client, feeding each datagram through the session first.
func (t *udpFlowTable) pumpUpstream(client netip.AddrPort, flow *udpFlow) {
	bufPtr := upstreamBufPool.Get()
	defer upstreamBufPool.Put(bufPtr)
	buf := *bufPtr

	for {
		_ = flow.upstream.SetReadDeadline(time.Now().Add(t.c.Config.SessionTimeout))
		n, err := flow.upstream.Read(buf)
		if err != nil {
			return
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		flow.sess.DeliverStream(data, false)

		clientAddr := net.UDPAddrFromAddrPort(client)
		_, _ = t.clientLn.WriteToUDP(data, clientAddr)
	}
}

// sweepLoop periodically tears down flows that have gone idle past the
// configured session timeout.
func (t *udpFlowTable) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(idleSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.sweep(now)
		}
	}
}

func (t *udpFlowTable) sweep(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, flow := range t.flows {
		if flow.sess.OnIdleTimeout(now) {
			flow.upstream.Close()
			delete(t.flows, key)
		}
	}
}

func (t *udpFlowTable) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, flow := range t.flows {
		flow.sess.Close()
		flow.upstream.Close()
		delete(t.flows, key)
	}
}
