// Package game генерирует арифметические примеры из детерминированной
// последовательности: одинаковый seed дает одинаковые примеры.
package game

import (
	"encoding/binary"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Game хранит свой генератор и seed, глобального состояния нет
type Game struct {
	seed      uint64
	rng       *rand.Rand
	settings  Settings
	current   Problem
	score     int
	startedAt time.Time
	now       func() time.Time
}

// New создает игру с заданным seed и сразу генерирует первый пример
func New(seed uint64, settings Settings) *Game {
	settings.Addition[0] = settings.Addition[0].normalize()
	settings.Addition[1] = settings.Addition[1].normalize()
	settings.Multiplication[0] = settings.Multiplication[0].normalize()
	settings.Multiplication[1] = settings.Multiplication[1].normalize()

	g := &Game{
		seed:     seed,
		rng:      rand.New(rand.NewChaCha8(seedKey(seed))),
		settings: settings,
		now:      time.Now,
	}
	g.Advance()
	return g
}

// NewRandom создает игру со случайным seed; seed доступен через Seed()
func NewRandom(settings Settings) *Game {
	return New(rand.Uint64(), settings)
}

// seedKey растягивает 64-битный seed до 32-байтного ключа ChaCha8
func seedKey(seed uint64) [32]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	return blake2b.Sum256(b[:])
}

func (g *Game) Seed() uint64 {
	return g.seed
}

func (g *Game) Settings() Settings {
	return g.settings
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Current() Problem {
	return g.current
}

// CurrentProblem возвращает текст текущего примера
func (g *Game) CurrentProblem() string {
	return g.current.String()
}

// IsCorrect сравнивает ввод с ответом как текст
func (g *Game) IsCorrect(candidate string) bool {
	return strconv.FormatUint(uint64(g.current.Answer), 10) == strings.TrimSpace(candidate)
}

// Submit засчитывает верный ответ и переходит к следующему примеру
func (g *Game) Submit(candidate string) bool {
	if !g.IsCorrect(candidate) {
		return false
	}
	g.score++
	g.Advance()
	return true
}

// Advance генерирует следующий пример. Операнды неотрицательные, деление нацело
func (g *Game) Advance() {
	op := operations[g.rng.IntN(len(operations))]

	switch op {
	case OpAdd, OpSubtract:
		a := g.pick(g.settings.Addition[0])
		b := g.pick(g.settings.Addition[1])
		sum := a + b
		if op == OpAdd {
			g.current = Problem{First: a, Second: b, Answer: sum, Op: op}
		} else {
			g.current = Problem{First: sum, Second: a, Answer: b, Op: op}
		}
	case OpMultiply, OpDivide:
		a := g.pick(g.settings.Multiplication[0])
		b := g.pick(g.settings.Multiplication[1])
		product := a * b
		if op == OpMultiply {
			g.current = Problem{First: a, Second: b, Answer: product, Op: op}
		} else {
			g.current = Problem{First: product, Second: a, Answer: b, Op: op}
		}
	}
}

func (g *Game) pick(r Range) uint32 {
	return r.Min + uint32(g.rng.Uint64N(uint64(r.Max-r.Min)+1))
}

// Start запускает часы игры
func (g *Game) Start() {
	g.startedAt = g.now()
}

func (g *Game) Started() bool {
	return !g.startedAt.IsZero()
}

// RemainingTime возвращает оставшиеся секунды; до Start - полное время
func (g *Game) RemainingTime() int {
	total := int(g.settings.TotalTime / time.Second)
	if g.startedAt.IsZero() {
		return total
	}
	elapsed := int(g.now().Sub(g.startedAt) / time.Second)
	return max(total-elapsed, 0)
}

func (g *Game) Finished() bool {
	return g.Started() && g.RemainingTime() == 0
}
