// Package codec переводит сообщения обнаружения в текст вида "<Tag>:<name>" и обратно.
package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const delimiter = ":"

// Codec кодирует и декодирует сообщения обнаружения
type Codec interface {
	Encode(m Message) []byte
	Decode(payload []byte) (Message, error)
}

// New возвращает строгий или совместимый (legacy) кодек.
// Формат на проводе у обоих одинаковый
func New(strict bool) Codec {
	if strict {
		return Strict{}
	}
	return Legacy{}
}

// Encode - детерминированная кодировка "<Tag>:<name>"
func Encode(m Message) []byte {
	return []byte(string(m.Kind) + delimiter + m.Name)
}

// ValidateName проверяет, что имя не содержит тегов сообщений:
// Legacy-декодер прочитал бы "RoomHost:Searching-Sam" как Searching.
func ValidateName(name string) error {
	for _, kind := range knownKinds {
		if strings.Contains(name, string(kind)) {
			return fmt.Errorf("%w: %q contains %q", ErrReservedName, name, kind)
		}
	}
	return nil
}

// Legacy классифицирует сообщение поиском подстроки тега в тексте:
// "pre-Searching-post" тоже считается Searching.
type Legacy struct{}

func (Legacy) Encode(m Message) []byte {
	return Encode(m)
}

func (Legacy) Decode(payload []byte) (Message, error) {
	if !utf8.Valid(payload) {
		return Message{}, ErrInvalidEncoding
	}
	text := string(payload)

	var name string
	if _, after, found := strings.Cut(text, delimiter); found {
		name = after
	}

	switch {
	case strings.Contains(text, string(KindSearching)):
		return Message{Kind: KindSearching, Name: name}, nil
	case strings.Contains(text, string(KindRoomHost)):
		return Message{Kind: KindRoomHost, Name: name}, nil
	default:
		return Message{Kind: KindUnknown, Name: name}, nil
	}
}

// Strict требует точный тег до первого ':'; все после него - имя (может содержать ':')
type Strict struct{}

func (Strict) Encode(m Message) []byte {
	return Encode(m)
}

func (Strict) Decode(payload []byte) (Message, error) {
	if !utf8.Valid(payload) {
		return Message{}, ErrInvalidEncoding
	}

	tag, name, found := strings.Cut(string(payload), delimiter)
	if !found {
		return Message{}, fmt.Errorf("%w: missing %q delimiter", ErrMalformedMessage, delimiter)
	}

	kind := Kind(tag)
	if kind == KindUnknown || !kind.known() {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
	}

	return Message{Kind: kind, Name: name}, nil
}
