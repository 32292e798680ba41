package session

import (
	"bufio"
	"io"
)

// KeyKind identifies a key event.
type KeyKind int

const (
	// KeyChar carries a printable character in Key.Char.
	KeyChar KeyKind = iota
	// KeyCycle presents the next completion (tab).
	KeyCycle
	// KeyConfirm accepts the presented completion (space).
	KeyConfirm
	// KeyCommit adds, deletes or quits depending on mode and buffer (enter).
	KeyCommit
	// KeyCancel abandons the current entry (escape).
	KeyCancel
	// KeyErase removes the character before the cursor (backspace).
	KeyErase
)

func (k KeyKind) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyCycle:
		return "cycle"
	case KeyConfirm:
		return "confirm"
	case KeyCommit:
		return "commit"
	case KeyCancel:
		return "cancel"
	case KeyErase:
		return "erase"
	default:
		return "unknown"
	}
}

// Key is one discrete input event.
type Key struct {
	Kind KeyKind
	Char byte
}

// Char returns a KeyChar event for c.
func Char(c byte) Key {
	return Key{Kind: KeyChar, Char: c}
}

// KeySource delivers key events one at a time, blocking until one is ready.
type KeySource interface {
	Next() (Key, error)
}

// ByteSource decodes raw terminal bytes into key events: tab, space, newline,
// escape and backspace/DEL map to the control keys, printable ASCII maps to
// KeyChar, everything else is skipped.
type ByteSource struct {
	r *bufio.Reader
}

// NewByteSource reads key bytes from r.
func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: bufio.NewReader(r)}
}

// Next returns the next recognised key. It returns io.EOF once r is drained.
func (b *ByteSource) Next() (Key, error) {
	for {
		c, err := b.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if key, ok := DecodeByte(c); ok {
			return key, nil
		}
	}
}

// DecodeByte maps a single input byte to a key event.
func DecodeByte(c byte) (Key, bool) {
	switch c {
	case '\t':
		return Key{Kind: KeyCycle}, true
	case ' ':
		return Key{Kind: KeyConfirm}, true
	case '\n', '\r':
		return Key{Kind: KeyCommit}, true
	case 0x1b:
		return Key{Kind: KeyCancel}, true
	case 0x7f, 0x08:
		return Key{Kind: KeyErase}, true
	}
	if c > ' ' && c <= '~' {
		return Char(c), true
	}
	return Key{}, false
}

// Keys turns a string into key events using DecodeByte. Handy for scripted
// input.
func Keys(s string) []Key {
	keys := make([]Key, 0, len(s))
	for i := 0; i < len(s); i++ {
		if key, ok := DecodeByte(s[i]); ok {
			keys = append(keys, key)
		}
	}
	return keys
}
