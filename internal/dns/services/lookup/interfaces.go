package lookup

import (
	"context"

	"github.com/ccouzens/dns-packet/internal/dns/domain"
)

// Exchange carries everything one query/response exchange produced: the raw
// bytes in both directions for the display layer, and the decoded message.
type Exchange struct {
	QueryBytes    []byte
	ResponseBytes []byte
	Message       domain.Message
}

// UpstreamClient performs a single DNS exchange with a resolver.
type UpstreamClient interface {
	Exchange(ctx context.Context, header domain.Header, question domain.Question) (Exchange, error)
	Address() string
}
