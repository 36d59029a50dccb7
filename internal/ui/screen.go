package ui

import (
	"fmt"
	"io"

	"zetalan/internal/game"

	"github.com/fatih/color"
)

const (
	keyCtrlC     = 3
	keyBackspace = 8
	keyEscape    = 27
	keyDelete    = 127
)

var (
	titleColor   = color.New(color.Bold, color.FgCyan)
	problemColor = color.New(color.FgYellow)
	scoreColor   = color.New(color.FgGreen)
	clockColor   = color.New(color.FgRed)
)

// Screen - состояние экрана игры: текущая игра и набранный ответ
type Screen struct {
	game    *game.Game
	input   []rune
	quit    bool
	pending int // сколько байт escape-последовательности еще пропустить
}

func NewScreen(g *game.Game) *Screen {
	return &Screen{game: g}
}

func (s *Screen) Input() string {
	return string(s.input)
}

func (s *Screen) Quit() bool {
	return s.quit
}

// HandleKey обрабатывает один байт ввода. Возвращает false, когда пора выходить
func (s *Screen) HandleKey(b byte) bool {
	if s.pending > 0 {
		s.pending--
		return true
	}

	switch {
	case b == keyCtrlC || b == 'q':
		s.quit = true
		return false

	case b == keyEscape:
		// стрелки: ESC [ X
		s.pending = 2

	case b == keyDelete || b == keyBackspace:
		if len(s.input) > 0 {
			s.input = s.input[:len(s.input)-1]
			s.checkAnswer()
		}

	case b >= 32 && b < 127:
		s.input = append(s.input, rune(b))
		s.checkAnswer()
	}

	return true
}

// checkAnswer засчитывает ответ, как только набранный текст совпал с ответом
func (s *Screen) checkAnswer() {
	if s.game.Submit(string(s.input)) {
		s.input = s.input[:0]
	}
}

// Render перерисовывает строку статуса на месте текущей
func (s *Screen) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\r\033[2K%s %s  %s  %s",
		titleColor.Sprint(" ZetaLAN "),
		problemColor.Sprintf("%s = %s", s.game.CurrentProblem(), string(s.input)),
		scoreColor.Sprintf("score %d", s.game.Score()),
		clockColor.Sprintf("%ds", s.game.RemainingTime()),
	)
	return err
}

// RenderSummary выводит итог игры
func (s *Screen) RenderSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\r\033[2K%s %s\r\n",
		titleColor.Sprint(" ZetaLAN "),
		scoreColor.Sprintf("final score %d (seed %d)", s.game.Score(), s.game.Seed()),
	)
	return err
}
