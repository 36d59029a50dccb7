package session

import (
	"context"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/stretchr/testify/mock"
)

type datagram struct {
	payload []byte
	src     *net.UDPAddr
	err     error
}

// fakeConn - транспорт в памяти: входящие датаграммы подаются через incoming,
// отправленные складываются в sent
type fakeConn struct {
	addr     *net.UDPAddr
	incoming chan datagram
	sentCh   chan []byte
	network  *fakeNetwork

	mu     sync.Mutex
	sent   [][]byte
	closed bool
}

func newFakeConn(addr string) *fakeConn {
	return &fakeConn{
		addr:     mustAddr(addr),
		incoming: make(chan datagram, 32),
		sentCh:   make(chan []byte, 32),
	}
}

func (c *fakeConn) SendToGroup(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	c.sent = append(c.sent, payload)
	c.mu.Unlock()

	c.sentCh <- payload
	if c.network != nil {
		c.network.deliver(c.addr, payload)
	}
	return nil
}

func (c *fakeConn) Receive(ctx context.Context) ([]byte, *net.UDPAddr, error) {
	select {
	case d := <-c.incoming:
		return d.payload, d.src, d.err
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) push(payload string, from string) {
	c.incoming <- datagram{payload: []byte(payload), src: mustAddr(from)}
}

func (c *fakeConn) pushRaw(payload []byte, from string) {
	c.incoming <- datagram{payload: payload, src: mustAddr(from)}
}

// fakeNetwork доставляет каждую отправку всем участникам, включая отправителя (loopback)
type fakeNetwork struct {
	mu      sync.Mutex
	members []*fakeConn
}

func (n *fakeNetwork) join(c *fakeConn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c.network = n
	n.members = append(n.members, c)
}

func (n *fakeNetwork) deliver(from *net.UDPAddr, payload []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, m := range n.members {
		m.incoming <- datagram{payload: payload, src: from}
	}
}

// MockConn для сценариев с ошибками транспорта
type MockConn struct {
	mock.Mock
}

func (m *MockConn) SendToGroup(ctx context.Context, payload []byte) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockConn) Receive(ctx context.Context) ([]byte, *net.UDPAddr, error) {
	args := m.Called(ctx)
	payload, _ := args.Get(0).([]byte)
	src, _ := args.Get(1).(*net.UDPAddr)
	return payload, src, args.Error(2)
}

func (m *MockConn) Close() error {
	args := m.Called()
	return args.Error(0)
}

func mustAddr(s string) *net.UDPAddr {
	addr, err := net.ResolveUDPAddr("udp4", s)
	if err != nil {
		panic(err)
	}
	return addr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
