package p2p

import (
	"fmt"
	"time"
)

// dispatch decodes msg according to the peer's current state and
// invokes the matching Listener callback. A pre-handshake message
// received out of order, and any command that fails to decode,
// returns an error so Run can apply ban score.
func (p *Peer) dispatch(msg *Message, l Listener) error {
	switch p.state {
	case StateVersionSent:
		return p.dispatchAwaitingVersion(msg, l)
	case StateVersionReceived:
		return p.dispatchAwaitingVerack(msg, l)
	case StateReady:
		return p.dispatchReady(msg, l)
	default:
		return coreErr(ErrInvalid, fmt.Sprintf("peer: message %q received in state %s", msg.Command, p.state))
	}
}

func (p *Peer) dispatchAwaitingVersion(msg *Message, l Listener) error {
	if msg.Command != CmdVersion {
		return coreErr(ErrInvalid, fmt.Sprintf("peer: expected version, got %q", msg.Command))
	}
	v, err := DecodeVersionPayload(msg.Payload)
	if err != nil {
		return err
	}
	if v.ProtocolVersion < 0 || uint32(v.ProtocolVersion) < p.Config.Params.MinPeerVersion {
		return coreErr(ErrObsolete, fmt.Sprintf("peer: obsolete protocol version %d", v.ProtocolVersion))
	}
	if v.Services&ServiceNodeNetwork == 0 {
		return coreErr(ErrNonStandard, "peer: lacks NODE_NETWORK service")
	}
	p.NegotiatedVersion = v.ProtocolVersion
	p.Services = v.Services
	p.UserAgent = v.UserAgent
	p.StartHeight = v.StartHeight
	p.state = StateVersionReceived
	if err := l.OnVersion(p, v); err != nil {
		return err
	}
	return p.Send(CmdVerack, nil)
}

func (p *Peer) dispatchAwaitingVerack(msg *Message, l Listener) error {
	switch msg.Command {
	case CmdVerack:
		if err := checkEmpty(CmdVerack, msg.Payload); err != nil {
			return err
		}
		p.state = StateReady
		return l.OnVerack(p)
	case CmdVersion:
		return coreErr(ErrInvalid, "peer: duplicate version")
	default:
		// Tolerate other traffic arriving before verack; process it
		// through the ready-state table without advancing state.
		return p.dispatchReady(msg, l)
	}
}

func (p *Peer) dispatchReady(msg *Message, l Listener) error {
	switch msg.Command {
	case CmdVersion:
		return coreErr(ErrInvalid, "peer: duplicate version")
	case CmdVerack:
		return checkEmpty(CmdVerack, msg.Payload)
	case CmdAddr:
		addrs, err := DecodeAddrPayload(msg.Payload, time.Now())
		if err != nil {
			return err
		}
		return l.OnAddr(p, addrs)
	case CmdInv:
		vecs, err := DecodeInvPayload(msg.Payload)
		if err != nil {
			return err
		}
		return l.OnInv(p, vecs)
	case CmdGetData:
		vecs, err := DecodeGetDataPayload(msg.Payload)
		if err != nil {
			return err
		}
		return l.OnGetData(p, vecs)
	case CmdNotFound:
		vecs, err := DecodeNotFoundPayload(msg.Payload)
		if err != nil {
			return err
		}
		return l.OnNotFound(p, vecs)
	case CmdGetBlocks:
		loc, err := DecodeGetBlocksPayload(msg.Payload)
		if err != nil {
			return err
		}
		return l.OnGetBlocks(p, loc)
	case CmdGetHeaders:
		loc, err := DecodeGetHeadersPayload(msg.Payload)
		if err != nil {
			return err
		}
		return l.OnGetHeaders(p, loc)
	case CmdHeaders:
		headers, err := DecodeHeadersPayload(msg.Payload, p.Config.Params.MaxTarget(), time.Now())
		if err != nil {
			return err
		}
		return l.OnHeaders(p, headers)
	case CmdBlock:
		block, err := DecodeBlockPayload(msg.Payload, p.Config.Params.MaxTarget(), time.Now())
		if err != nil {
			return err
		}
		return l.OnBlock(p, block)
	case CmdTx:
		tx, err := DecodeTxPayload(msg.Payload)
		if err != nil {
			return err
		}
		return l.OnTx(p, tx)
	case CmdMerkleBlock:
		header, branch, matched, err := DecodeMerkleBlockPayload(msg.Payload, p.Config.Params.MaxTarget(), time.Now())
		if err != nil {
			return err
		}
		return l.OnMerkleBlock(p, header, branch, matched)
	case CmdFilterLoad:
		f, err := DecodeFilterLoadPayload(msg.Payload)
		if err != nil {
			return err
		}
		p.SetFilter(f)
		return l.OnFilterLoad(p, f)
	case CmdFilterAdd:
		data, err := DecodeFilterAddPayload(msg.Payload)
		if err != nil {
			return err
		}
		if f := p.Filter(); f != nil {
			f.Add(data)
		}
		return l.OnFilterAdd(p, data)
	case CmdFilterClear:
		if err := checkEmpty(CmdFilterClear, msg.Payload); err != nil {
			return err
		}
		p.ClearFilter()
		return l.OnFilterClear(p)
	case CmdGetAddr:
		if err := checkEmpty(CmdGetAddr, msg.Payload); err != nil {
			return err
		}
		return l.OnGetAddr(p)
	case CmdMempool:
		if err := checkEmpty(CmdMempool, msg.Payload); err != nil {
			return err
		}
		return l.OnMempool(p)
	case CmdPing:
		nonce, err := DecodePingPayload(msg.Payload)
		if err != nil {
			return err
		}
		if err := l.OnPing(p, nonce); err != nil {
			return err
		}
		return p.Send(CmdPong, EncodePongPayload(nonce))
	case CmdPong:
		nonce, err := DecodePongPayload(msg.Payload)
		if err != nil {
			return err
		}
		if p.pingOutstanding && p.pingNonce == nonce {
			p.pingOutstanding = false
		}
		return l.OnPong(p, nonce)
	case CmdReject:
		r, err := DecodeRejectPayload(msg.Payload)
		if err != nil {
			return err
		}
		return l.OnReject(p, r)
	case CmdAlert:
		a, err := DecodeAlertPayload(msg.Payload)
		if err != nil {
			return err
		}
		return l.OnAlert(p, a)
	default:
		// Unknown commands are ignored rather than treated as
		// misbehavior, so future protocol extensions degrade
		// gracefully.
		return nil
	}
}
