package chain

import (
	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// InvType classifies an inventory item as announced or requested via
// inv/getdata/notfound.
type InvType uint32

const (
	InvError         InvType = 0
	InvTx            InvType = 1
	InvBlock         InvType = 2
	InvFilteredBlock InvType = 3
)

// InvVect pairs an inventory type with the hash it identifies.
type InvVect struct {
	Type InvType
	Hash chainhash.Hash
}

// Bytes returns the 36-byte wire encoding: 4-byte type, 32-byte
// reversed hash.
func (v InvVect) Bytes() []byte {
	buf := bytesutil.NewWriteBuffer(36)
	buf.PutUint32LE(uint32(v.Type))
	buf.PutBytes(v.Hash.ToWire())
	return buf.Bytes()
}

// ParseInvVect decodes one inventory vector.
func ParseInvVect(buf *bytesutil.Buffer) (InvVect, error) {
	t, err := buf.GetUint32LE()
	if err != nil {
		return InvVect{}, err
	}
	wire, err := buf.GetBytes(chainhash.Size)
	if err != nil {
		return InvVect{}, err
	}
	h, err := chainhash.NewHashFromWire(wire)
	if err != nil {
		return InvVect{}, err
	}
	return InvVect{Type: InvType(t), Hash: h}, nil
}
