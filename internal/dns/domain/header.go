package domain

// Header represents the fixed 12-byte DNS message header (RFC 1035 §4.1.1),
// with the 16-bit flags word unpacked into named fields. The bit layout lives
// entirely in Flags and ParseFlags so that no call site manipulates raw bits.
type Header struct {
	ID                 uint16
	Response           bool // QR - false for queries, true for responses
	Opcode             Opcode
	Authoritative      bool // AA
	Truncated          bool // TC
	RecursionDesired   bool // RD
	RecursionAvailable bool // RA
	AuthenticatedData  bool // AD (RFC 4035)
	CheckingDisabled   bool // CD (RFC 4035)
	RCode              RCode

	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// Flags word bit positions within the second 16 bits of the header.
const (
	flagQR     = 1 << 15
	flagAA     = 1 << 10
	flagTC     = 1 << 9
	flagRD     = 1 << 8
	flagRA     = 1 << 7
	flagAD     = 1 << 5
	flagCD     = 1 << 4
	opcodeMask = 0xF << 11
	rcodeMask  = 0xF
)

// NewQueryHeader constructs the header for an outbound standard query:
// recursion desired, one question, every other count zero.
func NewQueryHeader(id uint16) Header {
	return Header{
		ID:               id,
		Opcode:           OpcodeQuery,
		RecursionDesired: true,
		QDCount:          1,
	}
}

// Flags packs the header's named flag fields into the wire-format flags word.
func (h Header) Flags() uint16 {
	var f uint16
	if h.Response {
		f |= flagQR
	}
	f |= (uint16(h.Opcode) << 11) & opcodeMask
	if h.Authoritative {
		f |= flagAA
	}
	if h.Truncated {
		f |= flagTC
	}
	if h.RecursionDesired {
		f |= flagRD
	}
	if h.RecursionAvailable {
		f |= flagRA
	}
	if h.AuthenticatedData {
		f |= flagAD
	}
	if h.CheckingDisabled {
		f |= flagCD
	}
	f |= uint16(h.RCode) & rcodeMask
	return f
}

// ParseFlags unpacks a wire-format flags word into the header's named fields.
// The ID and section counts are left untouched.
func (h *Header) ParseFlags(f uint16) {
	h.Response = f&flagQR != 0
	h.Opcode = Opcode((f & opcodeMask) >> 11)
	h.Authoritative = f&flagAA != 0
	h.Truncated = f&flagTC != 0
	h.RecursionDesired = f&flagRD != 0
	h.RecursionAvailable = f&flagRA != 0
	h.AuthenticatedData = f&flagAD != 0
	h.CheckingDisabled = f&flagCD != 0
	h.RCode = RCode(f & rcodeMask)
}
