package main

import (
	"fmt"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/ScripterRon/bitcoincore/p2p"
)

var addressBookBucket = []byte("addresses")

func addressBookPath(dataDir string) string {
	return filepath.Join(dataDir, "addrbook.db")
}

// addressBookListener persists every addr announcement into a bbolt
// bucket keyed by host:port and prints version, verack, ping and reject
// events. It does not answer getaddr: that callback, like every other
// one, falls through to BaseListener's no-op behavior.
type addressBookListener struct {
	p2p.BaseListener
	db *bbolt.DB
}

func (l *addressBookListener) OnVersion(p *p2p.Peer, v *p2p.VersionPayload) error {
	fmt.Printf("peer version: protocol=%d user_agent=%q start_height=%d\n", v.ProtocolVersion, v.UserAgent, v.StartHeight)
	return nil
}

func (l *addressBookListener) OnVerack(p *p2p.Peer) error {
	fmt.Println("handshake complete")
	return nil
}

func (l *addressBookListener) OnAddr(p *p2p.Peer, addrs []p2p.PeerAddress) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(addressBookBucket)
		for _, a := range addrs {
			if err := b.Put([]byte(a.String()), a.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *addressBookListener) OnPing(p *p2p.Peer, nonce uint64) error {
	fmt.Printf("ping nonce=%d\n", nonce)
	return nil
}

func (l *addressBookListener) OnReject(p *p2p.Peer, r *p2p.RejectPayload) error {
	fmt.Printf("peer rejected %s: code=0x%02x reason=%q\n", r.Message, r.Code, r.Reason)
	return nil
}
