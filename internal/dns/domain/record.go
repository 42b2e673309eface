package domain

import "fmt"

// ResourceRecord represents one decoded DNS resource record. Data always
// holds the raw RDATA bytes exactly as they appeared on the wire; Text holds
// the decoded human-readable form when the record type is supported, and is
// empty for opaque records.
type ResourceRecord struct {
	Name     string
	Type     RRType
	Class    RRClass
	TTL      uint32 // seconds
	RDLength uint16 // RDATA byte length as declared on the wire
	Data     []byte
	Text     string
}

// NewResourceRecord constructs a ResourceRecord and validates it. Unknown
// types and classes are accepted: a record decoded from a response must
// survive even when this tool cannot interpret its RDATA.
func NewResourceRecord(name string, rrtype RRType, class RRClass, ttl uint32, data []byte, text string) (ResourceRecord, error) {
	if len(data) > 0xFFFF {
		return ResourceRecord{}, fmt.Errorf("rdata too large: %d bytes", len(data))
	}
	rr := ResourceRecord{
		Name:     name,
		Type:     rrtype,
		Class:    class,
		TTL:      ttl,
		RDLength: uint16(len(data)),
		Data:     data,
		Text:     text,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks whether the ResourceRecord fields are structurally valid.
func (rr ResourceRecord) Validate() error {
	if rr.Name == "" {
		return fmt.Errorf("record name must not be empty")
	}
	if int(rr.RDLength) != len(rr.Data) {
		return fmt.Errorf("declared rdata length %d does not match %d data bytes", rr.RDLength, len(rr.Data))
	}
	return nil
}

// IsOpaque returns true when the record's RDATA could not be interpreted
// and only the raw bytes are available.
func (rr ResourceRecord) IsOpaque() bool {
	return rr.Text == ""
}

// String returns the record in zone-file presentation order. Opaque records
// render their RDATA as hex, prefixed with the byte length.
func (rr ResourceRecord) String() string {
	data := rr.Text
	if rr.IsOpaque() {
		data = fmt.Sprintf("\\# %d %x", rr.RDLength, rr.Data)
	}
	return fmt.Sprintf("%s %d %s %s %s", rr.Name, rr.TTL, rr.Class, rr.Type, data)
}
