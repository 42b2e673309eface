package domain

import "fmt"

// Opcode represents the kind of DNS operation requested in a message header.
type Opcode uint8

// DNS opcode constants
const (
	OpcodeQuery  Opcode = 0 // QUERY - Standard query
	OpcodeIQuery Opcode = 1 // IQUERY - Inverse query (obsolete)
	OpcodeStatus Opcode = 2 // STATUS - Server status request
	OpcodeNotify Opcode = 4 // NOTIFY - Zone change notification
	OpcodeUpdate Opcode = 5 // UPDATE - Dynamic update
	OpcodeDSO    Opcode = 6 // DSO - DNS stateful operations
)

// IsValid returns true if the Opcode is one of the assigned operation codes.
func (o Opcode) IsValid() bool {
	switch o {
	case OpcodeQuery, OpcodeIQuery, OpcodeStatus, OpcodeNotify, OpcodeUpdate, OpcodeDSO:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the Opcode.
func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	case OpcodeNotify:
		return "NOTIFY"
	case OpcodeUpdate:
		return "UPDATE"
	case OpcodeDSO:
		return "DSO"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(o))
	}
}
