// Package hexdump renders raw packet bytes as an offset/hex/ASCII dump for
// terminal display.
package hexdump

import (
	"fmt"
	"strings"
)

const bytesPerLine = 16

// Dump formats data as one line per 16 bytes: a 4-digit hex offset, the hex
// bytes, and a printable-ASCII gutter. Non-printable bytes render as '.'.
func Dump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var b strings.Builder
	for base := 0; base < len(data); base += bytesPerLine {
		end := base + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		line := data[base:end]

		fmt.Fprintf(&b, "%04x:  ", base)
		for i := 0; i < bytesPerLine; i++ {
			if i < len(line) {
				fmt.Fprintf(&b, "%02x ", line[i])
			} else {
				b.WriteString("   ")
			}
			if i == bytesPerLine/2-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte(' ')
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
