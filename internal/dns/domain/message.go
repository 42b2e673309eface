package domain

import "fmt"

// Message represents a complete decoded DNS message: header plus the four
// record sections (RFC 1035 §4.1). Every entity is built once from the wire
// buffer and read-only afterwards.
type Message struct {
	Header     Header
	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// NewMessage constructs a Message and validates that the header counts match
// the sections actually present.
func NewMessage(header Header, questions []Question, answers, authority, additional []ResourceRecord) (Message, error) {
	msg := Message{
		Header:     header,
		Questions:  questions,
		Answers:    answers,
		Authority:  authority,
		Additional: additional,
	}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Validate checks the count invariants between the header and the sections.
func (m Message) Validate() error {
	if int(m.Header.QDCount) != len(m.Questions) {
		return fmt.Errorf("header QDCOUNT %d does not match %d questions", m.Header.QDCount, len(m.Questions))
	}
	if int(m.Header.ANCount) != len(m.Answers) {
		return fmt.Errorf("header ANCOUNT %d does not match %d answers", m.Header.ANCount, len(m.Answers))
	}
	if int(m.Header.NSCount) != len(m.Authority) {
		return fmt.Errorf("header NSCOUNT %d does not match %d authority records", m.Header.NSCount, len(m.Authority))
	}
	if int(m.Header.ARCount) != len(m.Additional) {
		return fmt.Errorf("header ARCOUNT %d does not match %d additional records", m.Header.ARCount, len(m.Additional))
	}
	return nil
}

// IsError returns true if the message's response code indicates a failure.
func (m Message) IsError() bool {
	return m.Header.RCode.IsError()
}

// HasAnswers returns true if the message contains answer records.
func (m Message) HasAnswers() bool {
	return len(m.Answers) > 0
}
