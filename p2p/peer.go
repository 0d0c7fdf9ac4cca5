package p2p

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/ScripterRon/bitcoincore/bloom"
)

// State is a peer's position in the handshake/dispatch state machine.
type State int

const (
	StateNew State = iota
	StateVersionSent
	StateVersionReceived
	StateReady
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateVersionSent:
		return "VERSION_SENT"
	case StateVersionReceived:
		return "VERSION_RECEIVED"
	case StateReady:
		return "READY"
	case StateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// PeerConfig carries everything a Peer needs to run independent of
// any particular connection.
type PeerConfig struct {
	Params      *NetParams
	OurVersion  VersionPayload
	IdleTimeout time.Duration
}

// Peer tracks one connection's negotiated state and dispatches
// decoded messages to a Listener. Its Bloom filter is guarded by
// filterMu; its other mutable fields are only ever touched from the
// goroutine running Run.
type Peer struct {
	Conn   net.Conn
	Remote PeerAddress
	Config PeerConfig

	state State

	NegotiatedVersion int32
	Services          uint64
	UserAgent         string
	StartHeight       int32

	Ban BanScore

	filterMu sync.Mutex
	filter   *bloom.Filter

	pingOutstanding bool
	pingNonce       uint64

	logger *slog.Logger
}

// NewPeer wraps conn for the dispatch loop. cfg.Params must already be
// configured via Configure.
func NewPeer(conn net.Conn, remote PeerAddress, cfg PeerConfig) (*Peer, error) {
	if conn == nil {
		return nil, fmt.Errorf("p2p: peer: nil conn")
	}
	if cfg.Params == nil {
		return nil, fmt.Errorf("p2p: peer: nil params")
	}
	return &Peer{Conn: conn, Remote: remote, Config: cfg, state: StateNew, logger: slog.Default()}, nil
}

// State returns the peer's current position in the handshake state
// machine.
func (p *Peer) State() State { return p.state }

// SetFilter installs or replaces the peer's Bloom filter under lock.
func (p *Peer) SetFilter(f *bloom.Filter) {
	p.filterMu.Lock()
	p.filter = f
	p.filterMu.Unlock()
}

// ClearFilter removes the peer's Bloom filter under lock.
func (p *Peer) ClearFilter() {
	p.filterMu.Lock()
	p.filter = nil
	p.filterMu.Unlock()
}

// Filter returns the peer's currently installed Bloom filter, or nil
// if none is set.
func (p *Peer) Filter() *bloom.Filter {
	p.filterMu.Lock()
	defer p.filterMu.Unlock()
	return p.filter
}

// Send frames and writes one message to the peer's connection.
func (p *Peer) Send(command string, payload []byte) error {
	return WriteMessage(p.Conn, p.Config.Params.Magic, command, payload)
}

// SendPing writes a ping carrying nonce and marks one outstanding.
func (p *Peer) SendPing(nonce uint64) error {
	p.pingOutstanding = true
	p.pingNonce = nonce
	return p.Send(CmdPing, EncodePingPayload(nonce))
}

// mustEncodeReject builds a reject body for a dispatch failure. The
// reason is truncated to fit MaxRejectReasonBytes; encoding a reject
// body for a non-empty command and an in-range reason cannot fail.
func mustEncodeReject(command string, code byte, reason string) []byte {
	if len(reason) > MaxRejectReasonBytes {
		reason = reason[:MaxRejectReasonBytes]
	}
	raw, err := EncodeRejectPayload(RejectPayload{Message: command, Code: code, Reason: reason})
	if err != nil {
		return nil
	}
	return raw
}

// Run drives the handshake and then the dispatch loop until ctx is
// canceled, the connection fails, or the peer is disconnected for
// misbehavior. The caller is responsible for closing Conn afterward.
func (p *Peer) Run(ctx context.Context, l Listener) error {
	if l == nil {
		return fmt.Errorf("p2p: peer: nil listener")
	}

	if ctx != nil {
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				_ = p.Conn.Close()
			case <-done:
			}
		}()
		defer close(done)
	}

	p.state = StateVersionSent
	versionPayload, err := EncodeVersionPayload(p.Config.OurVersion)
	if err != nil {
		return err
	}
	if err := p.Send(CmdVersion, versionPayload); err != nil {
		return err
	}

	for p.state != StateDisconnected {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		if p.Config.IdleTimeout > 0 {
			_ = p.Conn.SetReadDeadline(time.Now().Add(p.Config.IdleTimeout))
		}

		msg, rerr := ReadMessage(p.Conn, p.Config.Params.Magic)
		if rerr != nil {
			now := time.Now()
			if rerr.BanScoreDelta > 0 {
				p.Ban.Add(now, rerr.BanScoreDelta)
			}
			p.logger.Warn("malformed message", "remote", p.Remote.String(), "error", rerr.Err, "ban_score", p.Ban.Score(now))
			if p.Ban.ShouldBan(now) {
				p.state = StateDisconnected
				p.logger.Error("peer banned", "remote", p.Remote.String(), "score", p.Ban.Score(now))
				return fmt.Errorf("p2p: peer: banned (score=%d): %w", p.Ban.Score(now), rerr.Err)
			}
			if rerr.Disconnect {
				p.state = StateDisconnected
				return rerr
			}
			continue
		}

		if err := p.dispatch(msg, l); err != nil {
			now := time.Now()
			ce, _ := err.(*CoreError)
			delta := 10
			if ce != nil {
				delta = ce.BanDelta
			}
			if delta > 0 {
				p.Ban.Add(now, delta)
			}
			p.logger.Warn("dispatch failure", "remote", p.Remote.String(), "command", msg.Command, "error", err, "ban_score", p.Ban.Score(now))
			if raw := mustEncodeReject(msg.Command, RejectCodeFor(err), err.Error()); raw != nil {
				_ = p.Send(CmdReject, raw)
			}
			if ce.disconnectsImmediately() {
				p.state = StateDisconnected
				p.logger.Warn("peer disconnected", "remote", p.Remote.String(), "code", ce.Code)
				return fmt.Errorf("p2p: peer: disconnected (%s): %w", ce.Code, err)
			}
			if p.Ban.ShouldBan(now) {
				p.state = StateDisconnected
				p.logger.Error("peer banned", "remote", p.Remote.String(), "score", p.Ban.Score(now))
				return fmt.Errorf("p2p: peer: misbehavior (banned): %w", err)
			}
		}
	}
	return nil
}
