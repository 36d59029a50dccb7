// Package session - сессия обнаружения: имя, транспорт, текущая роль
// (хост или клиент в поиске) и последний известный адрес хоста.
package session

import (
	"context"
	"log/slog"
	"net"
	"sync"

	"zetalan/internal/codec"

	"github.com/google/uuid"
)

type Session struct {
	id      string
	name    string
	conn    Conn
	codec   codec.Codec
	opts    Options
	log     *slog.Logger
	metrics *Metrics

	mu               sync.RWMutex
	state            State
	lastKnownHost    *Host
	cancel           context.CancelFunc
	stopped          bool
	onHostDiscovered func(Host)
}

// New создает сессию в состоянии Idle поверх готового транспорта
func New(name string, conn Conn, opts Options, log *slog.Logger) *Session {
	if opts.Codec == nil {
		opts.Codec = codec.Legacy{}
	}
	id := uuid.New().String()

	return &Session{
		id:      id,
		name:    name,
		conn:    conn,
		codec:   opts.Codec,
		opts:    opts,
		log:     log.With(slog.String("session", id), slog.String("name", name)),
		metrics: NewMetrics(),
		state:   StateIdle,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Name() string {
	return s.name
}

func (s *Session) Metrics() *Metrics {
	return s.metrics
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LastKnownHost возвращает адрес последнего ответившего хоста
func (s *Session) LastKnownHost() (Host, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastKnownHost == nil {
		return Host{}, false
	}
	h := *s.lastKnownHost
	if h.Addr != nil {
		h.Addr = &net.UDPAddr{IP: h.Addr.IP, Port: h.Addr.Port, Zone: h.Addr.Zone}
	}
	return h, true
}

// SetOnHostDiscovered устанавливает callback, вызываемый на каждый RoomHost
func (s *Session) SetOnHostDiscovered(callback func(Host)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onHostDiscovered = callback
}

// Stop прерывает текущий цикл роли и закрывает транспорт
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	s.log.Info("Session stopped", slog.Any("stats", s.metrics.GetStats()))
	return s.conn.Close()
}

func (s *Session) isStopped() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopped
}

// startRole переводит сессию из Idle в роль; у процесса одна роль на сессию.
// Имя с тегом сообщения роль не получает
func (s *Session) startRole(ctx context.Context, role State) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, ErrStopped
	}
	if s.state != StateIdle {
		return nil, ErrRoleAlreadyAssigned
	}
	if err := codec.ValidateName(s.name); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.state = role
	s.cancel = cancel
	return ctx, nil
}

func (s *Session) recordHost(h Host) {
	s.mu.Lock()
	s.lastKnownHost = &h
	s.state = StateConnected
	callback := s.onHostDiscovered
	s.mu.Unlock()

	s.metrics.RecordHostDiscovered()
	if callback != nil {
		callback(h)
	}
}
