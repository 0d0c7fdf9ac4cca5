package p2p

import (
	"github.com/ScripterRon/bitcoincore/bloom"
	"github.com/ScripterRon/bitcoincore/chain"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// Listener receives callbacks for every inbound message a Peer
// dispatches, including the version and verack of the handshake
// itself. Implementations that only
// care about a subset of commands should embed BaseListener and
// override the methods they need.
type Listener interface {
	OnVersion(p *Peer, v *VersionPayload) error
	OnVerack(p *Peer) error
	OnAddr(p *Peer, addrs []PeerAddress) error
	OnInv(p *Peer, vecs []chain.InvVect) error
	OnGetData(p *Peer, vecs []chain.InvVect) error
	OnNotFound(p *Peer, vecs []chain.InvVect) error
	OnGetBlocks(p *Peer, loc *LocatorPayload) error
	OnGetHeaders(p *Peer, loc *LocatorPayload) error
	OnHeaders(p *Peer, headers []chain.BlockHeader) error
	OnBlock(p *Peer, block *chain.Block) error
	OnTx(p *Peer, tx *chain.Tx) error
	OnMerkleBlock(p *Peer, header chain.BlockHeader, branch *chain.MerkleBranch, matched []chainhash.Hash) error
	OnFilterLoad(p *Peer, filter *bloom.Filter) error
	OnFilterAdd(p *Peer, data []byte) error
	OnFilterClear(p *Peer) error
	OnGetAddr(p *Peer) error
	OnMempool(p *Peer) error
	OnPing(p *Peer, nonce uint64) error
	OnPong(p *Peer, nonce uint64) error
	OnReject(p *Peer, r *RejectPayload) error
	OnAlert(p *Peer, a *AlertPayload) error
}

// BaseListener is a no-op Listener. Embedding it lets a caller
// implement only the callbacks it cares about.
type BaseListener struct{}

func (BaseListener) OnVersion(*Peer, *VersionPayload) error                       { return nil }
func (BaseListener) OnVerack(*Peer) error                                        { return nil }
func (BaseListener) OnAddr(*Peer, []PeerAddress) error                           { return nil }
func (BaseListener) OnInv(*Peer, []chain.InvVect) error                          { return nil }
func (BaseListener) OnGetData(*Peer, []chain.InvVect) error                      { return nil }
func (BaseListener) OnNotFound(*Peer, []chain.InvVect) error                     { return nil }
func (BaseListener) OnGetBlocks(*Peer, *LocatorPayload) error                    { return nil }
func (BaseListener) OnGetHeaders(*Peer, *LocatorPayload) error                   { return nil }
func (BaseListener) OnHeaders(*Peer, []chain.BlockHeader) error                  { return nil }
func (BaseListener) OnBlock(*Peer, *chain.Block) error                          { return nil }
func (BaseListener) OnTx(*Peer, *chain.Tx) error                                { return nil }
func (BaseListener) OnMerkleBlock(*Peer, chain.BlockHeader, *chain.MerkleBranch, []chainhash.Hash) error {
	return nil
}
func (BaseListener) OnFilterLoad(*Peer, *bloom.Filter) error                     { return nil }
func (BaseListener) OnFilterAdd(*Peer, []byte) error                            { return nil }
func (BaseListener) OnFilterClear(*Peer) error                                  { return nil }
func (BaseListener) OnGetAddr(*Peer) error                                      { return nil }
func (BaseListener) OnMempool(*Peer) error                                      { return nil }
func (BaseListener) OnPing(*Peer, uint64) error                                 { return nil }
func (BaseListener) OnPong(*Peer, uint64) error                                 { return nil }
func (BaseListener) OnReject(*Peer, *RejectPayload) error                       { return nil }
func (BaseListener) OnAlert(*Peer, *AlertPayload) error                         { return nil }
