package tui

import "strings"

// Screen is an in-memory, line-addressable text surface. It implements
// session.Display and is rendered by the bubbletea model or dumped as plain
// text after a scripted run.
type Screen struct {
	rows      [][]byte
	row, col  int
	refreshes int
}

// NewScreen returns an empty screen with the cursor at the origin.
func NewScreen() *Screen {
	return &Screen{}
}

// MoveTo places the cursor. Negative coordinates clamp to zero.
func (s *Screen) MoveTo(row, col int) {
	s.row = max(row, 0)
	s.col = max(col, 0)
}

// ClearToEOL erases from the cursor to the end of the current row.
func (s *Screen) ClearToEOL() {
	if s.row >= len(s.rows) {
		return
	}
	if s.col < len(s.rows[s.row]) {
		s.rows[s.row] = s.rows[s.row][:s.col]
	}
}

// Write puts text at the cursor, overwriting what is there, and advances
// the cursor. A newline moves to the start of the next row.
func (s *Screen) Write(text string) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			s.row++
			s.col = 0
			continue
		}
		s.grow()
		line := s.rows[s.row]
		for len(line) < s.col {
			line = append(line, ' ')
		}
		if s.col < len(line) {
			line[s.col] = c
		} else {
			line = append(line, c)
		}
		s.rows[s.row] = line
		s.col++
	}
}

func (s *Screen) grow() {
	for len(s.rows) <= s.row {
		s.rows = append(s.rows, nil)
	}
}

// Clear erases everything and homes the cursor.
func (s *Screen) Clear() {
	s.rows = nil
	s.row, s.col = 0, 0
}

// Refresh marks a frame boundary.
func (s *Screen) Refresh() {
	s.refreshes++
}

// Refreshes returns how many frames have been flushed.
func (s *Screen) Refreshes() int {
	return s.refreshes
}

// Cursor returns the cursor position.
func (s *Screen) Cursor() (row, col int) {
	return s.row, s.col
}

// Row returns the text on row i, or "" past the last written row.
func (s *Screen) Row(i int) string {
	if i < 0 || i >= len(s.rows) {
		return ""
	}
	return string(s.rows[i])
}

// Lines returns every row up to the last one written or holding the cursor.
func (s *Screen) Lines() []string {
	n := max(len(s.rows), s.row+1)
	lines := make([]string, n)
	for i := range lines {
		lines[i] = s.Row(i)
	}
	return lines
}

// String renders the screen as plain text.
func (s *Screen) String() string {
	return strings.Join(s.Lines(), "\n")
}
