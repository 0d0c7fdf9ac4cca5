// Package p2p implements the Bitcoin peer-to-peer wire protocol: the
// message envelope, the per-command payload codecs, network parameter
// selection, and the per-peer dispatch state machine.
package p2p

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

const (
	// HeaderBytes is the fixed envelope prefix length: 4-byte magic,
	// 12-byte command, 4-byte length, 4-byte checksum.
	HeaderBytes = 24
	// CommandBytes is the width of the NUL-padded command field.
	CommandBytes = 12
	// MaxPayloadBytes bounds any single message payload this library
	// will read, protecting against a peer declaring an enormous
	// length and never sending the bytes.
	MaxPayloadBytes = 2 * 1024 * 1024
)

// Message is a decoded envelope: the network magic it arrived under,
// its command name, and its raw payload bytes.
type Message struct {
	Magic   uint32
	Command string
	Payload []byte
}

// ReadError conveys how the caller should treat a malformed message:
// whether the connection is worth keeping (Disconnect) and how much
// the ban score should move.
type ReadError struct {
	Err           error
	BanScoreDelta int
	Disconnect    bool
}

func (e *ReadError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func checksum4(payload []byte) [4]byte {
	digest := bytesutil.DoubleSha256(payload)
	var out [4]byte
	copy(out[:], digest[:4])
	return out
}

func encodeCommand(cmd string) ([CommandBytes]byte, error) {
	var out [CommandBytes]byte
	if cmd == "" || len(cmd) > CommandBytes {
		return out, fmt.Errorf("p2p: invalid command %q", cmd)
	}
	copy(out[:], cmd)
	return out, nil
}

func decodeCommand(b [CommandBytes]byte) (string, error) {
	n := CommandBytes
	for i, c := range b {
		if c == 0x00 {
			n = i
			break
		}
	}
	for i := n; i < CommandBytes; i++ {
		if b[i] != 0x00 {
			return "", fmt.Errorf("p2p: command not NUL-padded")
		}
	}
	if n == 0 {
		return "", fmt.Errorf("p2p: empty command")
	}
	return string(b[:n]), nil
}

// WriteMessage writes one envelope-framed message to w: magic (big
// endian), command, payload length (little endian), checksum, then
// the payload.
func WriteMessage(w io.Writer, magic uint32, command string, payload []byte) error {
	cmd, err := encodeCommand(command)
	if err != nil {
		return err
	}
	if len(payload) > MaxPayloadBytes {
		return fmt.Errorf("p2p: payload exceeds maximum size")
	}
	sum := checksum4(payload)

	var hdr [HeaderBytes]byte
	binary.BigEndian.PutUint32(hdr[0:4], magic)
	copy(hdr[4:16], cmd[:])
	binary.LittleEndian.PutUint32(hdr[16:20], uint32(len(payload)))
	copy(hdr[20:24], sum[:])

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err = w.Write(payload)
	return err
}

// ReadMessage reads exactly one envelope-framed message from r,
// validating magic, length, and checksum. A broken envelope — bad
// magic, an oversize/truncated payload, or a bad checksum — always
// disconnects the peer; only a truncated payload or a bad checksum
// also carries a ban-score delta.
func ReadMessage(r io.Reader, expectedMagic uint32) (*Message, *ReadError) {
	var hdr [HeaderBytes]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, &ReadError{Err: err, Disconnect: true}
	}

	magic := binary.BigEndian.Uint32(hdr[0:4])
	if magic != expectedMagic {
		return nil, &ReadError{Err: fmt.Errorf("p2p: magic mismatch"), Disconnect: true}
	}

	var cmdBytes [CommandBytes]byte
	copy(cmdBytes[:], hdr[4:16])
	cmd, err := decodeCommand(cmdBytes)
	if err != nil {
		return nil, &ReadError{Err: err, BanScoreDelta: 10}
	}

	payloadLen := binary.LittleEndian.Uint32(hdr[16:20])
	if payloadLen > MaxPayloadBytes {
		return nil, &ReadError{Err: fmt.Errorf("p2p: declared payload length exceeds maximum"), Disconnect: true}
	}

	var expectedSum [4]byte
	copy(expectedSum[:], hdr[20:24])

	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, &ReadError{Err: err, BanScoreDelta: 20, Disconnect: true}
		}
	}

	if got := checksum4(payload); !bytes.Equal(got[:], expectedSum[:]) {
		return nil, &ReadError{Err: fmt.Errorf("p2p: checksum mismatch"), BanScoreDelta: 10, Disconnect: true}
	}

	return &Message{Magic: magic, Command: cmd, Payload: payload}, nil
}
