// Package ui - терминальный интерфейс игры: raw-режим, чтение клавиш и строка статуса.
package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"zetalan/internal/game"

	"golang.org/x/term"
)

const refreshInterval = 250 * time.Millisecond

// RunTerminal переводит stdin в raw-режим (если это терминал) и запускает игру
func RunTerminal(ctx context.Context, g *game.Game) error {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, oldState)
	}

	return Run(ctx, g, os.Stdin, os.Stdout)
}

// Run запускает часы игры и обрабатывает ввод до выхода, конца времени, EOF или отмены ctx
func Run(ctx context.Context, g *game.Game, in io.Reader, out io.Writer) error {
	// читатель клавиш завершается вместе с Run
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := NewScreen(g)
	g.Start()

	keys := make(chan byte)
	readErr := make(chan error, 1)

	go func() {
		buf := make([]byte, 16)
		for {
			n, err := in.Read(buf)
			for _, b := range buf[:n] {
				select {
				case keys <- b:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	if err := s.Render(out); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return s.RenderSummary(out)

		case b := <-keys:
			if !s.HandleKey(b) {
				return s.RenderSummary(out)
			}

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return s.RenderSummary(out)
			}
			return err

		case <-ticker.C:
		}

		if g.Finished() {
			return s.RenderSummary(out)
		}

		if err := s.Render(out); err != nil {
			return err
		}
	}
}
