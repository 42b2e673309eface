// Command dnsq sends a single DNS query over UDP to a resolver and prints
// the raw packets and the decoded answer.
//
// Usage:
//
//	dnsq <name> <resolver-ip>
//
// The record type, resolver port, receive timeout, and log settings come
// from DNSQ_-prefixed environment variables.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ccouzens/dns-packet/internal/dns/common/clock"
	"github.com/ccouzens/dns-packet/internal/dns/common/hexdump"
	"github.com/ccouzens/dns-packet/internal/dns/common/log"
	"github.com/ccouzens/dns-packet/internal/dns/config"
	"github.com/ccouzens/dns-packet/internal/dns/domain"
	"github.com/ccouzens/dns-packet/internal/dns/gateways/upstream"
	"github.com/ccouzens/dns-packet/internal/dns/gateways/wire"
	"github.com/ccouzens/dns-packet/internal/dns/services/lookup"
)

const (
	version = "0.1.0"
	appName = "dnsq"
)

// Application holds the wired components for one invocation.
type Application struct {
	config *config.AppConfig
	lookup *lookup.Service
	qtype  domain.RRType
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	name, resolver, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nUsage: %s <name> <resolver-ip>\n", err, appName)
		os.Exit(2)
	}

	app, err := buildApplication(cfg, resolver)
	if err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Failed to build application")
	}

	log.Debug(map[string]any{
		"version": version,
		"name":    name,
		"type":    cfg.QueryType,
		"server":  resolver,
		"timeout": cfg.Timeout,
	}, "Starting lookup")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	result, err := app.lookup.Lookup(ctx, name, app.qtype)
	if err != nil {
		log.Error(map[string]any{"error": err.Error()}, "Lookup failed")
		os.Exit(1)
	}

	printResult(os.Stdout, result)
}

// parseArgs extracts the two positional arguments: the name to look up and
// the resolver IP address.
func parseArgs(args []string) (name, resolver string, err error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	name = args[0]
	if name == "" {
		return "", "", fmt.Errorf("name must not be empty")
	}
	if net.ParseIP(args[1]) == nil {
		return "", "", fmt.Errorf("invalid resolver IP address: %q", args[1])
	}
	return name, args[1], nil
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig, resolver string) (*Application, error) {
	qtype := domain.RRTypeFromString(cfg.QueryType)
	if qtype == 0 {
		return nil, fmt.Errorf("unsupported query type: %q", cfg.QueryType)
	}

	logger := log.GetLogger()
	codec := wire.NewUDPCodec(logger)

	address := net.JoinHostPort(resolver, strconv.Itoa(cfg.ResolverPort))
	client, err := upstream.NewClient(upstream.Options{
		Address: address,
		Timeout: time.Duration(cfg.Timeout) * time.Second,
		Codec:   codec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream client: %w", err)
	}

	service, err := lookup.New(lookup.Options{
		Client: client,
		Clock:  clock.RealClock{},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup service: %w", err)
	}

	return &Application{
		config: cfg,
		lookup: service,
		qtype:  qtype,
	}, nil
}

// printResult writes the raw packets and the decoded message.
func printResult(w io.Writer, result lookup.Result) {
	msg := result.Exchange.Message

	fmt.Fprintf(w, "request packet (%d bytes):\n%s\n", len(result.Exchange.QueryBytes), hexdump.Dump(result.Exchange.QueryBytes))
	fmt.Fprintf(w, "response packet (%d bytes):\n%s\n", len(result.Exchange.ResponseBytes), hexdump.Dump(result.Exchange.ResponseBytes))

	fmt.Fprintf(w, ";; id %d, opcode %s, rcode %s, flags [%s]\n",
		msg.Header.ID, msg.Header.Opcode, msg.Header.RCode, flagNames(msg.Header))
	fmt.Fprintf(w, ";; QUESTION %d, ANSWER %d, AUTHORITY %d, ADDITIONAL %d\n\n",
		len(msg.Questions), len(msg.Answers), len(msg.Authority), len(msg.Additional))

	for _, q := range msg.Questions {
		fmt.Fprintf(w, ";%s\n", q)
	}
	for _, rr := range msg.Answers {
		fmt.Fprintln(w, rr)
	}
	for _, rr := range msg.Authority {
		fmt.Fprintln(w, rr)
	}
	for _, rr := range msg.Additional {
		fmt.Fprintln(w, rr)
	}

	fmt.Fprintf(w, "\n;; server %s, rtt %s\n", result.Server, result.RTT)
}

// flagNames renders the set header flag bits as their conventional
// lowercase mnemonics.
func flagNames(h domain.Header) string {
	var names []string
	if h.Response {
		names = append(names, "qr")
	}
	if h.Authoritative {
		names = append(names, "aa")
	}
	if h.Truncated {
		names = append(names, "tc")
	}
	if h.RecursionDesired {
		names = append(names, "rd")
	}
	if h.RecursionAvailable {
		names = append(names, "ra")
	}
	if h.AuthenticatedData {
		names = append(names, "ad")
	}
	if h.CheckingDisabled {
		names = append(names, "cd")
	}
	return strings.Join(names, " ")
}
