package session

import (
	"context"
	"net"

	"zetalan/internal/codec"
)

// State - состояние роли сессии
type State int

const (
	StateIdle State = iota
	StateHosting
	StateSearching
	// StateConnected - клиент знает адрес хоста
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHosting:
		return "hosting"
	case StateSearching:
		return "searching"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Host - удаленный пир, объявивший себя хостом
type Host struct {
	Name string
	Addr *net.UDPAddr
}

// Conn - транспорт, которым пользуется сессия (multicast.Transport)
type Conn interface {
	SendToGroup(ctx context.Context, payload []byte) error
	Receive(ctx context.Context) ([]byte, *net.UDPAddr, error)
	Close() error
}

// Options содержит настройки поведения ролей
type Options struct {
	// nil - codec.Legacy
	Codec codec.Codec
	// клиент завершает поиск после первого RoomHost
	StopOnFirstHost bool
	// ошибка декодирования завершает цикл вместо пропуска датаграммы
	FatalDecodeErrors bool
}
