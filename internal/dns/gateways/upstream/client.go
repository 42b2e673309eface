// Package upstream sends one DNS query to a resolver over UDP and returns
// the decoded response. It owns the low-level networking concerns while the
// wire codec owns the message format.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/ccouzens/dns-packet/internal/dns/domain"
	"github.com/ccouzens/dns-packet/internal/dns/gateways/wire"
	"github.com/ccouzens/dns-packet/internal/dns/services/lookup"
)

// Error message constants for consistent error handling
const (
	errAddressRequired = "resolver address is required"
	errCodecRequired   = "DNS codec is required"
	errFailedToConnect = "failed to connect: %w"
	errEncodeFailed    = "encode failed: %w"
	errDeadlineFailed  = "failed to set connection deadline: %w"
	errWriteFailed     = "write failed: %w"
	errReadFailed      = "read failed: %w"
	errIDMismatch      = "transaction ID mismatch: sent %d, received %d"
	errNotAResponse    = "message from resolver is not a response"
)

// maxUDPMessageSize is the classic DNS-over-UDP payload limit (RFC 1035 §2.3.4).
const maxUDPMessageSize = 512

// DialFunc defines a function type for establishing a network connection.
// It takes a context for cancellation, the network type, and the address to
// connect to, returning a net.Conn and an error if any occurs.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Options defines configuration parameters for the upstream client: the
// resolver to query, the request timeout, the codec for the wire format, and
// a custom dial function for injecting connections in tests.
type Options struct {
	// required parameters
	Address string
	Timeout time.Duration
	// options to inject for testing purposes
	Codec wire.MessageCodec
	Dial  DialFunc
}

// Client performs a single query/response exchange with one resolver.
type Client struct {
	address string
	timeout time.Duration
	codec   wire.MessageCodec
	dial    DialFunc
}

// NewClient creates an upstream client for the given resolver address.
// Returns an error if the address or codec is missing. The default timeout
// is 5 seconds and the default dial function uses the standard net dialer.
func NewClient(opts Options) (*Client, error) {
	if opts.Address == "" {
		return nil, errors.New(errAddressRequired)
	}
	if opts.Codec == nil {
		return nil, errors.New(errCodecRequired)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	return &Client{
		address: opts.Address,
		timeout: opts.Timeout,
		codec:   opts.Codec,
		dial:    opts.Dial,
	}, nil
}

// Address returns the resolver address the client queries.
func (c *Client) Address() string {
	return c.address
}

// ensureContextDeadline ensures the context has a deadline, adding the
// client's default timeout if needed.
func (c *Client) ensureContextDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, nil
}

// Exchange encodes the query, performs one blocking send and one blocking
// receive on a fresh UDP connection, and decodes the reply. The response's
// transaction ID must match the query's.
func (c *Client) Exchange(ctx context.Context, header domain.Header, question domain.Question) (lookup.Exchange, error) {
	ctx, cancel := c.ensureContextDeadline(ctx)
	if cancel != nil {
		defer cancel()
	}

	queryBytes, err := c.codec.EncodeQuery(header, question)
	if err != nil {
		return lookup.Exchange{}, fmt.Errorf(errEncodeFailed, err)
	}

	conn, err := c.dial(ctx, "udp", c.address)
	if err != nil {
		return lookup.Exchange{}, fmt.Errorf(errFailedToConnect, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return lookup.Exchange{}, fmt.Errorf(errDeadlineFailed, err)
		}
	}

	// Run the blocking write/read pair in a goroutine so the context can
	// cancel the wait.
	resultChan := make(chan exchangeResult, 1)
	go func() {
		resultChan <- c.exchange(conn, header, queryBytes)
	}()

	select {
	case res := <-resultChan:
		return res.exchange, res.err
	case <-ctx.Done():
		return lookup.Exchange{}, ctx.Err()
	}
}

type exchangeResult struct {
	exchange lookup.Exchange
	err      error
}

func (c *Client) exchange(conn net.Conn, header domain.Header, queryBytes []byte) exchangeResult {
	if _, err := conn.Write(queryBytes); err != nil {
		return exchangeResult{err: fmt.Errorf(errWriteFailed, err)}
	}

	buffer := make([]byte, maxUDPMessageSize)
	n, err := conn.Read(buffer)
	if err != nil {
		return exchangeResult{err: fmt.Errorf(errReadFailed, err)}
	}
	responseBytes := buffer[:n]

	message, err := c.codec.DecodeMessage(responseBytes)
	if err != nil {
		return exchangeResult{err: err}
	}
	if message.Header.ID != header.ID {
		return exchangeResult{err: fmt.Errorf(errIDMismatch, header.ID, message.Header.ID)}
	}
	if !message.Header.Response {
		return exchangeResult{err: errors.New(errNotAResponse)}
	}

	return exchangeResult{exchange: lookup.Exchange{
		QueryBytes:    queryBytes,
		ResponseBytes: responseBytes,
		Message:       message,
	}}
}

var _ lookup.UpstreamClient = (*Client)(nil)
