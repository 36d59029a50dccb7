// Package multicast владеет единственным UDP-сокетом, через который идет обнаружение:
// bind на порт группы с reuse, вход в multicast-группу и loopback,
// отправка в группу и прием от кого угодно.
package multicast

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/net/ipv4"
)

const (
	DefaultBufferSize = 4096
	DefaultTTL        = 1
)

// Config содержит параметры сокета обнаружения
type Config struct {
	Group net.IP
	Port  int
	// nil - интерфейс по умолчанию
	Interface *net.Interface
	TTL       int
	// 0 - Receive ждет без ограничения (пока не отменен ctx)
	ReceiveTimeout time.Duration
	BufferSize     int
}

// Transport - UDP-сокет, подписанный на multicast-группу.
// Receive не должен вызываться из нескольких горутин одновременно.
type Transport struct {
	conn           *net.UDPConn
	pconn          *ipv4.PacketConn
	group          *net.UDPAddr
	iface          *net.Interface
	receiveTimeout time.Duration
	buf            []byte
	closed         atomic.Bool
}

// Bind создает сокет на 0.0.0.0:<port>, включает reuse и loopback и входит в группу
func Bind(ctx context.Context, cfg Config) (*Transport, error) {
	group := cfg.Group.To4()
	if group == nil || !group.IsMulticast() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, cfg.Group)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidAddress, cfg.Port)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	lc := net.ListenConfig{Control: reuseControl}
	pc, err := lc.ListenPacket(ctx, "udp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBindFailure, err)
	}
	conn := pc.(*net.UDPConn)

	pconn := ipv4.NewPacketConn(conn)
	if err := pconn.JoinGroup(cfg.Interface, &net.UDPAddr{IP: group}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: group %s: %v", ErrJoinFailure, group, err)
	}
	if cfg.Interface != nil {
		if err := pconn.SetMulticastInterface(cfg.Interface); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: interface %s: %v", ErrJoinFailure, cfg.Interface.Name, err)
		}
	}
	if err := pconn.SetMulticastLoopback(true); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: enable loopback: %v", ErrJoinFailure, err)
	}
	if err := pconn.SetMulticastTTL(cfg.TTL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: set ttl: %v", ErrJoinFailure, err)
	}

	port := conn.LocalAddr().(*net.UDPAddr).Port

	return &Transport{
		conn:           conn,
		pconn:          pconn,
		group:          &net.UDPAddr{IP: group, Port: port},
		iface:          cfg.Interface,
		receiveTimeout: cfg.ReceiveTimeout,
		buf:            make([]byte, cfg.BufferSize),
	}, nil
}

// Group возвращает адрес группы, куда уходят сообщения
func (t *Transport) Group() *net.UDPAddr {
	return &net.UDPAddr{IP: t.group.IP, Port: t.group.Port}
}

func (t *Transport) LocalAddr() net.Addr {
	return t.conn.LocalAddr()
}

// SendToGroup отправляет одну датаграмму в группу. Повторов нет
func (t *Transport) SendToGroup(ctx context.Context, payload []byte) error {
	if t.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline, _ := ctx.Deadline()
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if _, err := t.conn.WriteToUDP(payload, t.group); err != nil {
		if t.closed.Load() || errors.Is(err, net.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("send to %s: %w", t.group, err)
	}
	return nil
}

// Receive ждет следующую датаграмму и возвращает копию payload и адрес отправителя.
// Датаграмма нулевой длины возвращается как есть, без ошибки.
func (t *Transport) Receive(ctx context.Context) ([]byte, *net.UDPAddr, error) {
	if t.closed.Load() {
		return nil, nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var deadline time.Time
	if t.receiveTimeout > 0 {
		deadline = time.Now().Add(t.receiveTimeout)
	}
	ctxDeadline, hasCtxDeadline := ctx.Deadline()
	if hasCtxDeadline && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return nil, nil, fmt.Errorf("set read deadline: %w", err)
	}

	// отмена ctx будит заблокированное чтение
	stop := context.AfterFunc(ctx, func() {
		t.conn.SetReadDeadline(time.Unix(1, 0))
	})
	defer stop()

	n, src, err := t.conn.ReadFromUDP(t.buf)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		if t.closed.Load() || errors.Is(err, net.ErrClosed) {
			return nil, nil, ErrClosed
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			if hasCtxDeadline && !time.Now().Before(ctxDeadline) {
				return nil, nil, context.DeadlineExceeded
			}
			return nil, nil, fmt.Errorf("%w after %s", ErrReceiveTimeout, t.receiveTimeout)
		}
		return nil, nil, fmt.Errorf("receive: %w", err)
	}

	payload := make([]byte, n)
	copy(payload, t.buf[:n])
	return payload, src, nil
}

// Close выходит из группы и закрывает сокет. Повторный вызов ничего не делает
func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}
	var leaveErr error
	if err := t.pconn.LeaveGroup(t.iface, &net.UDPAddr{IP: t.group.IP}); err != nil {
		leaveErr = fmt.Errorf("leave group %s: %w", t.group.IP, err)
	}
	return errors.Join(leaveErr, t.conn.Close())
}
