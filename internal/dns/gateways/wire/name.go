package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	maxLabelLength = 63

	// maxPointerDepth bounds how many compression redirections a single name
	// may follow. The wire format does not forbid pointer cycles, so the
	// decoder has to impose its own limit to fail instead of looping.
	maxPointerDepth = 5
)

// EncodeName encodes a domain name into DNS wire format: each dot-separated
// label as a length byte followed by its raw bytes, terminated by the root
// label (a single zero byte). A trailing dot is accepted and ignored; the
// empty name encodes as the bare root.
func EncodeName(name string) ([]byte, error) {
	var buf bytes.Buffer
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		buf.WriteByte(0)
		return buf.Bytes(), nil
	}
	for _, label := range strings.Split(name, ".") {
		if len(label) == 0 {
			return nil, fmt.Errorf("%w: empty label in %q", ErrInvalidName, name)
		}
		if len(label) > maxLabelLength {
			return nil, fmt.Errorf("%w: label %q exceeds %d bytes", ErrInvalidName, label, maxLabelLength)
		}
		buf.WriteByte(byte(len(label)))
		buf.WriteString(label)
	}
	buf.WriteByte(0)
	return buf.Bytes(), nil
}

// DecodeName decodes a domain name from data starting at offset, following
// compression pointers as defined in RFC 1035 §4.1.4. It returns the decoded
// name and the offset just past the name's own encoding in its original
// position: past the terminating zero byte, or past the two-byte pointer.
// Where a pointer jumps to never moves the returned offset.
func DecodeName(data []byte, offset int) (string, int, error) {
	return decodeName(data, offset, 0)
}

func decodeName(data []byte, offset, depth int) (string, int, error) {
	if depth > maxPointerDepth {
		return "", 0, fmt.Errorf("%w: more than %d compression redirections", ErrMalformedName, maxPointerDepth)
	}
	var labels []string
	for {
		if offset >= len(data) {
			return "", 0, fmt.Errorf("%w: name at offset %d out of bounds (length %d)", ErrMalformedName, offset, len(data))
		}
		length := int(data[offset])
		if length == 0 {
			offset++
			break
		}
		if length&0xC0 == 0xC0 {
			if offset+1 >= len(data) {
				return "", 0, fmt.Errorf("%w: compression pointer at offset %d out of bounds", ErrMalformedName, offset)
			}
			ptr := int(binary.BigEndian.Uint16(data[offset:offset+2]) & 0x3FFF)
			if ptr >= len(data) {
				return "", 0, fmt.Errorf("%w: pointer target %d out of bounds (length %d)", ErrMalformedName, ptr, len(data))
			}
			// The pointed-to name may itself contain a pointer, so resolve
			// recursively; its end offset is irrelevant to the caller.
			suffix, _, err := decodeName(data, ptr, depth+1)
			if err != nil {
				return "", 0, err
			}
			if suffix != "" {
				labels = append(labels, suffix)
			}
			offset += 2
			break
		}
		if length > maxLabelLength {
			return "", 0, fmt.Errorf("%w: reserved label type 0x%02x at offset %d", ErrMalformedName, length, offset)
		}
		offset++
		if offset+length > len(data) {
			return "", 0, fmt.Errorf("%w: label at offset %d runs past end of buffer", ErrMalformedName, offset-1)
		}
		labels = append(labels, string(data[offset:offset+length]))
		offset += length
	}
	return strings.Join(labels, "."), offset, nil
}
