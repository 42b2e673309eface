package rrdata

import (
	"fmt"
	"net"
)

// decodeAAAAData decodes AAAA record data into an IPv6 address string.
// The payload must be exactly 16 bytes.
func decodeAAAAData(b []byte) (string, error) {
	if len(b) != 16 {
		return "", fmt.Errorf("invalid AAAA record data length: %d", len(b))
	}
	return net.IP(b).String(), nil
}
