package rrdata

import (
	"fmt"
	"strings"
)

// decodeDomainName decodes an uncompressed length-prefixed label sequence
// contained entirely within b. Used for names embedded in RDATA payloads
// that this package decodes (MX exchange).
func decodeDomainName(b []byte) (string, error) {
	var labels []string
	for i := 0; i < len(b); {
		labelLen := int(b[i])
		if labelLen == 0 {
			break
		}
		i++
		if i+labelLen > len(b) {
			return "", fmt.Errorf("invalid domain name encoding")
		}
		labels = append(labels, string(b[i:i+labelLen]))
		i += labelLen
	}
	return strings.Join(labels, "."), nil
}
