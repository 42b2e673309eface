package rrdata

import (
	"fmt"
	"net"
)

// decodeAData decodes A record data into a dotted IPv4 address string.
// The payload must be exactly 4 bytes.
func decodeAData(b []byte) (string, error) {
	if len(b) != 4 {
		return "", fmt.Errorf("invalid A record data length: %d", len(b))
	}
	return net.IP(b).String(), nil
}
