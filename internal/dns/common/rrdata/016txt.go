package rrdata

import (
	"fmt"
	"strings"
)

// decodeTXTData decodes TXT record data: one or more length-prefixed
// character strings (RFC 1035 §3.3.14), joined with semicolons.
func decodeTXTData(b []byte) (string, error) {
	var segments []string
	for i := 0; i < len(b); {
		segLen := int(b[i])
		i++
		if i+segLen > len(b) {
			return "", fmt.Errorf("invalid TXT segment length: %d", segLen)
		}
		segments = append(segments, string(b[i:i+segLen]))
		i += segLen
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("TXT record contains no segments")
	}
	return strings.Join(segments, "; "), nil
}
