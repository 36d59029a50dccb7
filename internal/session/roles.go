package session

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"zetalan/internal/codec"
	"zetalan/internal/util/logger/sl"
)

// AnnounceSelfAsHost переводит сессию в Hosting и отвечает RoomHost на каждый Searching.
// Возвращает nil на датаграмме нулевой длины, Stop или отмене ctx;
// ошибки транспорта возвращаются как есть.
func (s *Session) AnnounceSelfAsHost(ctx context.Context) error {
	const op = "session.AnnounceSelfAsHost"
	log := s.log.With(slog.String("op", op))

	ctx, err := s.startRole(ctx, StateHosting)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer s.endRole()

	reply := s.codec.Encode(codec.RoomHost(s.name))
	log.Info("Hosting, waiting for searching peers")

	for {
		msg, src, done, err := s.next(ctx, log)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if done {
			return nil
		}
		if msg == nil {
			continue
		}

		if err := s.handleAsHost(ctx, *msg, src, reply, log); err != nil {
			if ctx.Err() != nil || s.isStopped() {
				return nil
			}
			return fmt.Errorf("%s: %w", op, err)
		}
	}
}

// SearchForHost переводит сессию в Searching, отправляет один Searching в группу
// и слушает ответы. Каждый RoomHost перезаписывает последний известный хост
// (last-writer-wins) и переводит сессию в Connected.
func (s *Session) SearchForHost(ctx context.Context) error {
	const op = "session.SearchForHost"
	log := s.log.With(slog.String("op", op))

	ctx, err := s.startRole(ctx, StateSearching)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer s.endRole()

	if err := s.conn.SendToGroup(ctx, s.codec.Encode(codec.Searching(s.name))); err != nil {
		if ctx.Err() != nil || s.isStopped() {
			return nil
		}
		return fmt.Errorf("%s: send searching: %w", op, err)
	}
	log.Info("Searching for host")

	for {
		msg, src, done, err := s.next(ctx, log)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if done {
			return nil
		}
		if msg == nil {
			continue
		}

		if s.handleAsClient(*msg, src, log) && s.opts.StopOnFirstHost {
			log.Info("Host found, search finished")
			return nil
		}
	}
}

// next читает и декодирует следующую датаграмму.
// done - цикл должен завершиться без ошибки; msg == nil - датаграмма пропущена.
func (s *Session) next(ctx context.Context, log *slog.Logger) (msg *codec.Message, src *net.UDPAddr, done bool, err error) {
	payload, src, err := s.conn.Receive(ctx)
	if err != nil {
		if ctx.Err() != nil || s.isStopped() {
			log.Info("Discovery loop cancelled")
			return nil, nil, true, nil
		}
		return nil, nil, false, fmt.Errorf("receive: %w", err)
	}

	if len(payload) == 0 {
		log.Info("Zero-length datagram received, stopping", slog.Any("from", src))
		return nil, src, true, nil
	}
	s.metrics.RecordDatagram()

	decoded, err := s.codec.Decode(payload)
	if err != nil {
		s.metrics.RecordDecodeError()
		if s.opts.FatalDecodeErrors {
			return nil, src, false, fmt.Errorf("decode datagram from %s: %w", src, err)
		}
		log.Warn("Skipping undecodable datagram", slog.Any("from", src), sl.Err(err))
		return nil, src, false, nil
	}

	return &decoded, src, false, nil
}

func (s *Session) handleAsHost(ctx context.Context, msg codec.Message, src *net.UDPAddr, reply []byte, log *slog.Logger) error {
	if msg.Kind != codec.KindSearching {
		s.metrics.RecordIgnored()
		log.Debug("Ignoring message", slog.String("kind", msg.Kind.String()), slog.Any("from", src))
		return nil
	}

	log.Info("Peer is searching, announcing room",
		slog.String("peer", msg.Name),
		slog.Any("from", src),
	)
	if err := s.conn.SendToGroup(ctx, reply); err != nil {
		return fmt.Errorf("send room host: %w", err)
	}
	s.metrics.RecordSearchAnswered()
	return nil
}

// handleAsClient возвращает true, если сообщение - RoomHost
func (s *Session) handleAsClient(msg codec.Message, src *net.UDPAddr, log *slog.Logger) bool {
	if msg.Kind != codec.KindRoomHost {
		s.metrics.RecordIgnored()
		log.Debug("Ignoring message", slog.String("kind", msg.Kind.String()), slog.Any("from", src))
		return false
	}

	log.Info("Host discovered", slog.String("host", msg.Name), slog.Any("addr", src))
	s.recordHost(Host{Name: msg.Name, Addr: src})
	return true
}

func (s *Session) endRole() {
	s.mu.RLock()
	cancel := s.cancel
	s.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}
