// Package rrdata decodes the type-specific RDATA payload of a resource
// record into its presentation form. Only self-contained payloads live here:
// types whose RDATA embeds a possibly-compressed domain name (NS, CNAME, PTR)
// are decoded by the wire codec, which has the whole message to chase
// pointers through.
package rrdata

import "github.com/ccouzens/dns-packet/internal/dns/domain"

// Decode decodes a record value based on its type, from its binary
// representation. Unrecognized types return an empty string and no error:
// the record stays opaque rather than failing the parse.
func Decode(rrType domain.RRType, data []byte) (string, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return decodeAData(data)
	case domain.RRTypeMX: // 15
		return decodeMXData(data)
	case domain.RRTypeTXT: // 16
		return decodeTXTData(data)
	case domain.RRTypeAAAA: // 28
		return decodeAAAAData(data)
	default:
		return "", nil
	}
}
