// Package wire encodes DNS query messages and decodes DNS response messages
// for UDP transport. It owns the RFC 1035 wire format: header bit-fields,
// length-prefixed label encoding, and pointer-based name compression.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ccouzens/dns-packet/internal/dns/common/log"
	"github.com/ccouzens/dns-packet/internal/dns/common/rrdata"
	"github.com/ccouzens/dns-packet/internal/dns/domain"
)

const headerLength = 12

// MessageCodec is the interface the upstream gateway consumes: build the
// bytes for one query, and parse one response buffer into a typed message.
type MessageCodec interface {
	EncodeQuery(header domain.Header, question domain.Question) ([]byte, error)
	DecodeMessage(data []byte) (domain.Message, error)
}

// udpCodec implements MessageCodec for standard DNS over UDP messages.
type udpCodec struct {
	logger log.Logger
}

// NewUDPCodec creates and returns a new instance of udpCodec using the
// provided logger.
func NewUDPCodec(logger log.Logger) *udpCodec {
	return &udpCodec{
		logger: logger,
	}
}

// EncodeQuery serializes a single-question query message. The section counts
// are set to match what is actually written: one question, nothing else.
// Total length is deterministic: 12 + encoded name length + 4.
func (c *udpCodec) EncodeQuery(header domain.Header, question domain.Question) ([]byte, error) {
	name, err := EncodeName(question.Name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, header.ID)
	_ = binary.Write(&buf, binary.BigEndian, header.Flags())
	_ = binary.Write(&buf, binary.BigEndian, uint16(1)) // QDCOUNT
	_ = binary.Write(&buf, binary.BigEndian, uint16(0)) // ANCOUNT
	_ = binary.Write(&buf, binary.BigEndian, uint16(0)) // NSCOUNT
	_ = binary.Write(&buf, binary.BigEndian, uint16(0)) // ARCOUNT

	buf.Write(name)
	_ = binary.Write(&buf, binary.BigEndian, uint16(question.Type))
	_ = binary.Write(&buf, binary.BigEndian, uint16(question.Class))

	c.logger.Debug(map[string]any{
		"id":    header.ID,
		"name":  question.Name,
		"type":  question.Type.String(),
		"class": question.Class.String(),
		"size":  buf.Len(),
	}, "Encoded DNS query")

	return buf.Bytes(), nil
}

// DecodeMessage parses a raw DNS message into its header, questions, and
// resource record sections. Authority and additional records are parsed with
// the same per-record logic as answers so the cursor never desynchronizes.
func (c *udpCodec) DecodeMessage(data []byte) (domain.Message, error) {
	if len(data) < headerLength {
		return domain.Message{}, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrTruncatedMessage, len(data), headerLength)
	}

	var header domain.Header
	header.ID = binary.BigEndian.Uint16(data[0:2])
	header.ParseFlags(binary.BigEndian.Uint16(data[2:4]))
	header.QDCount = binary.BigEndian.Uint16(data[4:6])
	header.ANCount = binary.BigEndian.Uint16(data[6:8])
	header.NSCount = binary.BigEndian.Uint16(data[8:10])
	header.ARCount = binary.BigEndian.Uint16(data[10:12])

	offset := headerLength

	questions := make([]domain.Question, 0, header.QDCount)
	for i := 0; i < int(header.QDCount); i++ {
		question, newOffset, err := c.parseQuestion(data, offset)
		if err != nil {
			return domain.Message{}, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, question)
		offset = newOffset
	}

	sections := [3][]domain.ResourceRecord{}
	for s, count := range []uint16{header.ANCount, header.NSCount, header.ARCount} {
		records := make([]domain.ResourceRecord, 0, count)
		for i := 0; i < int(count); i++ {
			rr, newOffset, err := c.parseRecord(data, offset)
			if err != nil {
				return domain.Message{}, fmt.Errorf("record %d of section %d: %w", i, s+1, err)
			}
			records = append(records, rr)
			offset = newOffset
		}
		sections[s] = records
	}

	msg, err := domain.NewMessage(header, questions, sections[0], sections[1], sections[2])
	if err != nil {
		return domain.Message{}, err
	}

	c.logger.Debug(map[string]any{
		"id":         header.ID,
		"rcode":      header.RCode.String(),
		"questions":  len(msg.Questions),
		"answers":    len(msg.Answers),
		"authority":  len(msg.Authority),
		"additional": len(msg.Additional),
	}, "Decoded DNS message")

	return msg, nil
}

// parseQuestion extracts one question section entry starting at offset.
func (c *udpCodec) parseQuestion(data []byte, offset int) (domain.Question, int, error) {
	name, offset, err := DecodeName(data, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if offset+4 > len(data) {
		return domain.Question{}, 0, fmt.Errorf("%w: question fields at offset %d out of bounds", ErrTruncatedMessage, offset)
	}
	question := domain.Question{
		Name:  presentationName(name),
		Type:  domain.RRType(binary.BigEndian.Uint16(data[offset : offset+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[offset+2 : offset+4])),
	}
	return question, offset + 4, nil
}

// parseRecord extracts a single resource record starting at offset.
func (c *udpCodec) parseRecord(data []byte, offset int) (domain.ResourceRecord, int, error) {
	name, offset, err := DecodeName(data, offset)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}

	if offset+10 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: record fields at offset %d out of bounds", ErrTruncatedMessage, offset)
	}
	rrtype := domain.RRType(binary.BigEndian.Uint16(data[offset : offset+2]))
	class := domain.RRClass(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
	ttl := binary.BigEndian.Uint32(data[offset+4 : offset+8])
	rdLength := int(binary.BigEndian.Uint16(data[offset+8 : offset+10]))
	offset += 10

	if offset+rdLength > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: declared rdata length %d runs past end of buffer", ErrMalformedRecord, rdLength)
	}
	rdata := make([]byte, rdLength)
	copy(rdata, data[offset:offset+rdLength])

	rr, err := domain.NewResourceRecord(presentationName(name), rrtype, class, ttl, rdata, c.decodeRData(data, offset, rrtype, rdata))
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	return rr, offset + rdLength, nil
}

// decodeRData produces the presentation form of a record's payload, or empty
// when the type is unknown or the payload does not decode. A record that
// cannot be interpreted stays opaque; it never fails the parse, so records
// after it in the buffer still decode.
func (c *udpCodec) decodeRData(data []byte, rdataOffset int, rrtype domain.RRType, rdata []byte) string {
	var text string
	var err error
	switch rrtype {
	case domain.RRTypeNS, domain.RRTypeCNAME, domain.RRTypePTR:
		// These payloads are a domain name that may point back into the
		// message, so decode against the whole buffer. The name must still
		// end inside the declared rdata.
		var end int
		text, end, err = DecodeName(data, rdataOffset)
		if err == nil && end > rdataOffset+len(rdata) {
			err = fmt.Errorf("%w: name in rdata runs past declared length", ErrMalformedRecord)
		}
	default:
		text, err = rrdata.Decode(rrtype, rdata)
	}
	if err != nil {
		c.logger.Warn(map[string]any{
			"type":  rrtype.String(),
			"error": err.Error(),
		}, "Keeping undecodable rdata as raw bytes")
		return ""
	}
	return text
}

// presentationName maps the decoded root name to its presentation form.
func presentationName(name string) string {
	if name == "" {
		return "."
	}
	return name
}

var _ MessageCodec = &udpCodec{}
