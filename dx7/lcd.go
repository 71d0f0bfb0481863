package dx7

import (
	"fmt"
	"strings"
)

// Name is a voice name in the character set of the DX7 LCD. It matches
// ASCII only in the printable range 0x20..0x7E, and not even there for
// 0x5C (yen sign), 0x7E and 0x7F (arrows).
type Name [NameLength]byte

// NewName converts s to a Name. Characters outside printable ASCII become
// spaces, the name is padded with spaces.
func NewName(s string) Name {
	var n Name
	for i := range n {
		n[i] = ' '
	}
	for i := 0; i < len(s) && i < NameLength; i++ {
		c := s[i]
		if c < 0x20 || c > 0x7E {
			c = ' '
		}
		n[i] = c
	}
	return n
}

// ASCII renders the name using 7-bit ASCII substitutes.
func (n Name) ASCII() string {
	var b strings.Builder
	for _, c := range n {
		b.WriteByte(LCDASCII(c))
	}
	return b.String()
}

// Unicode renders the name using the closest Unicode characters.
func (n Name) Unicode() string {
	var b strings.Builder
	for _, c := range n {
		b.WriteString(LCDUnicode(c))
	}
	return b.String()
}

// Text renders the name with the Unicode table if unicode is true, otherwise
// with the ASCII table.
func (n Name) Text(unicode bool) string {
	if unicode {
		return n.Unicode()
	}
	return n.ASCII()
}

func (n Name) String() string { return n.ASCII() }

// Hex returns the stored bytes as space separated hex.
func (n Name) Hex() string {
	var b strings.Builder
	for i, c := range n {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", c)
	}
	return b.String()
}

// LCDASCII translates one LCD character code to ASCII. Codes without a
// sensible ASCII equivalent become '~', unused codes become a space.
func LCDASCII(c byte) byte {
	if c < 0x80 {
		return lcdASCII[c]
	}
	if u := lcdUnicode[c]; len(u) == 1 {
		return u[0]
	}
	if a, ok := lcdASCIIHigh[c]; ok {
		return a
	}
	return '~'
}

// LCDUnicode translates one LCD character code to a Unicode string.
func LCDUnicode(c byte) string {
	return lcdUnicode[c]
}

// Approximations for the upper half of the character ROM which only have a
// non-ASCII form in the Unicode table.
var lcdASCIIHigh = map[byte]byte{
	0xA1: 'o', // ∘
	0xA5: '.', // ⋅
	0xDF: 'o', // °
	0xE1: 'a', // ä
	0xE2: 'B', // ß
	0xE3: 'e', // ε
	0xE4: 'u', // μ
	0xE6: 'p', // ρ
	0xEB: 'x', // ×
	0xEC: 'c', // ¢
	0xED: 'L', // ₤
	0xEE: 'n', // ñ
	0xEF: 'o', // ö
	0xF4: 'O', // Ω
	0xF5: 'u', // ü
	0xF6: 'E', // Σ
	0xF7: 'n', // π
	0xF8: 'x', // ẍ
	0xFD: '/', // ÷
	0xFF: '#', // █
}

var lcdASCII = [128]byte{
	' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', // 0x00
	' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', // 0x10
	' ', '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/', // 0x20
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '<', '=', '>', '?', // 0x30
	'@', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', // 0x40
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', '[', 'Y', ']', '^', '_', // 0x50
	'`', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', // 0x60
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', '{', '|', '}', '>', '<', // 0x70
}

var lcdUnicode = [256]string{
	"₁", "₂", "₃", "₄", "₅", "₆", "₇", "₈", "₁", "₂", "₃", "₄", "₅", "₆", "₇", "₈", // 0x00
	" ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", // 0x10
	" ", "!", "\"", "#", "$", "%", "&", "'", "(", ")", "*", "+", ",", "-", ".", "/", // 0x20
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ":", ";", "<", "=", ">", "?", // 0x30
	"@", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", // 0x40
	"P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z", "[", "¥", "]", "^", "_", // 0x50
	"`", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", // 0x60
	"p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z", "{", "|", "}", "→", "←", // 0x70
	" ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", // 0x80
	" ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", " ", // 0x90
	" ", "∘", "⌈", "⌋", "~", "⋅", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", // 0xA0
	"-", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", // 0xB0
	"~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", // 0xC0
	"~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "~", "°", // 0xD0
	"∝", "ä", "ß", "ε", "μ", "σ", "ρ", "g", "√", "~", "j", "×", "¢", "₤", "ñ", "ö", // 0xE0
	"p", "q", "ϴ", "∞", "Ω", "ü", "Σ", "π", "ẍ", "y", "~", "~", "~", "÷", " ", "█", // 0xF0
}
