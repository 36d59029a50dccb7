package game

import (
	"fmt"
	"time"
)

type Operation int

const (
	OpAdd Operation = iota
	OpSubtract
	OpMultiply
	OpDivide
)

var operations = [...]Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

// Problem - пример вида "First Op Second = Answer"
type Problem struct {
	First  uint32
	Second uint32
	Answer uint32
	Op     Operation
}

func (p Problem) String() string {
	return fmt.Sprintf("%d %s %d", p.First, p.Op.Symbol(), p.Second)
}

// Range - включительный диапазон операнда
type Range struct {
	Min uint32
	Max uint32
}

type Settings struct {
	TotalTime time.Duration
	// диапазоны двух слагаемых; вычитание строится из суммы
	Addition [2]Range
	// диапазоны двух множителей; деление строится из произведения
	Multiplication [2]Range
}

func DefaultSettings() Settings {
	return Settings{
		TotalTime:      120 * time.Second,
		Addition:       [2]Range{{Min: 2, Max: 10}, {Min: 2, Max: 100}},
		Multiplication: [2]Range{{Min: 2, Max: 12}, {Min: 2, Max: 100}},
	}
}

func (r Range) normalize() Range {
	if r.Max < r.Min {
		return Range{Min: r.Max, Max: r.Min}
	}
	return r
}
