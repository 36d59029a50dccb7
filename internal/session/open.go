package session

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"zetalan/internal/codec"
	"zetalan/internal/config"
	"zetalan/internal/transport/multicast"
)

// Open поднимает multicast-транспорт по конфигурации и создает сессию поверх него
func Open(ctx context.Context, cfg config.Discovery, name string, log *slog.Logger) (*Session, error) {
	const op = "session.Open"

	var iface *net.Interface
	if cfg.Interface != "" {
		var err error
		iface, err = net.InterfaceByName(cfg.Interface)
		if err != nil {
			return nil, fmt.Errorf("%s: interface %q: %w", op, cfg.Interface, err)
		}
	}

	tr, err := multicast.Bind(ctx, multicast.Config{
		Group:          net.ParseIP(cfg.Group),
		Port:           cfg.Port,
		Interface:      iface,
		TTL:            cfg.TTL,
		ReceiveTimeout: cfg.ReceiveTimeout,
		BufferSize:     cfg.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("Discovery transport bound",
		slog.String("op", op),
		slog.String("group", tr.Group().String()),
		slog.String("local", tr.LocalAddr().String()),
	)

	return New(name, tr, Options{
		Codec:             codec.New(cfg.StrictCodec),
		StopOnFirstHost:   cfg.StopOnFirstHost,
		FatalDecodeErrors: cfg.FatalDecodeErrors,
	}, log), nil
}
