// Package lookup orchestrates one DNS lookup: it normalizes the caller's
// name, builds the query, hands it to the upstream gateway, and times the
// round trip.
package lookup

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/idna"

	"github.com/ccouzens/dns-packet/internal/dns/common/clock"
	"github.com/ccouzens/dns-packet/internal/dns/common/log"
	"github.com/ccouzens/dns-packet/internal/dns/domain"
)

// Result is the outcome of one lookup, ready for display.
type Result struct {
	Question domain.Question
	Server   string
	Exchange Exchange
	RTT      time.Duration
}

// Options configures a lookup Service.
type Options struct {
	Client UpstreamClient
	Clock  clock.Clock
	Logger log.Logger
}

// Service performs one-shot DNS lookups through an upstream client.
type Service struct {
	client UpstreamClient
	clock  clock.Clock
	logger log.Logger
}

// New constructs a lookup Service. The upstream client is required; clock
// and logger default to the real clock and a noop logger.
func New(opts Options) (*Service, error) {
	if opts.Client == nil {
		return nil, errors.New("upstream client is required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Service{
		client: opts.Client,
		clock:  opts.Clock,
		logger: opts.Logger,
	}, nil
}

// Lookup resolves one question: the name is IDNA-normalized to its ASCII
// form, a fresh random transaction ID is drawn, and exactly one exchange is
// performed against the configured resolver.
func (s *Service) Lookup(ctx context.Context, name string, rrtype domain.RRType) (Result, error) {
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(name, "."))
	if err != nil {
		return Result{}, fmt.Errorf("invalid lookup name %q: %w", name, err)
	}

	question, err := domain.NewQuestion(ascii, rrtype, domain.RRClassIN)
	if err != nil {
		return Result{}, err
	}

	id, err := randomID()
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate transaction ID: %w", err)
	}
	header := domain.NewQueryHeader(id)

	s.logger.Debug(map[string]any{
		"id":     id,
		"name":   question.Name,
		"type":   question.Type.String(),
		"server": s.client.Address(),
	}, "Sending DNS query")

	start := s.clock.Now()
	exchange, err := s.client.Exchange(ctx, header, question)
	if err != nil {
		return Result{}, err
	}
	rtt := s.clock.Now().Sub(start)

	s.logger.Info(map[string]any{
		"id":      id,
		"name":    question.Name,
		"type":    question.Type.String(),
		"server":  s.client.Address(),
		"rcode":   exchange.Message.Header.RCode.String(),
		"answers": len(exchange.Message.Answers),
		"rtt_ms":  rtt.Milliseconds(),
	}, "DNS lookup completed")

	return Result{
		Question: question,
		Server:   s.client.Address(),
		Exchange: exchange,
		RTT:      rtt,
	}, nil
}

// randomID draws a 16-bit transaction ID from the system's CSPRNG.
func randomID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}
