package script

// PayToPubKeyHash builds the standard P2PKH locking script:
// OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG.
func PayToPubKeyHash(hash160 [20]byte) []byte {
	out := make([]byte, 0, 25)
	out = append(out, byte(OP_DUP), byte(OP_HASH160), 20)
	out = append(out, hash160[:]...)
	out = append(out, byte(OP_EQUALVERIFY), byte(OP_CHECKSIG))
	return out
}

// PayToPubKey builds the locking script that checks a signature
// directly against an embedded public key: <pubkey> OP_CHECKSIG.
func PayToPubKey(pubkey []byte) []byte {
	out := make([]byte, 0, len(pubkey)+2)
	out = append(out, pushDataPrefix(len(pubkey))...)
	out = append(out, pubkey...)
	out = append(out, byte(OP_CHECKSIG))
	return out
}

// SignatureScript builds the scriptSig for a P2PKH/P2PK input: the
// signature (with its trailing sighash-type byte already appended)
// followed by the public key.
func SignatureScript(sigWithType []byte, pubkey []byte) []byte {
	out := make([]byte, 0, len(sigWithType)+len(pubkey)+2)
	out = append(out, pushDataPrefix(len(sigWithType))...)
	out = append(out, sigWithType...)
	out = append(out, pushDataPrefix(len(pubkey))...)
	out = append(out, pubkey...)
	return out
}

func pushDataPrefix(n int) []byte {
	switch {
	case n < int(OP_PUSHDATA1):
		return []byte{byte(n)}
	case n <= 0xff:
		return []byte{byte(OP_PUSHDATA1), byte(n)}
	case n <= 0xffff:
		return []byte{byte(OP_PUSHDATA2), byte(n), byte(n >> 8)}
	default:
		return []byte{byte(OP_PUSHDATA4), byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
	}
}

// IsPayToPubKeyHash reports whether script matches the standard P2PKH
// template and, if so, returns the embedded 20-byte hash.
func IsPayToPubKeyHash(s []byte) ([20]byte, bool) {
	var hash [20]byte
	if len(s) != 25 {
		return hash, false
	}
	if s[0] != byte(OP_DUP) || s[1] != byte(OP_HASH160) || s[2] != 20 ||
		s[23] != byte(OP_EQUALVERIFY) || s[24] != byte(OP_CHECKSIG) {
		return hash, false
	}
	copy(hash[:], s[3:23])
	return hash, true
}

// IsPayToPubKey reports whether script matches the standard bare
// pay-to-pubkey template and, if so, returns the embedded public key
// bytes.
func IsPayToPubKey(s []byte) ([]byte, bool) {
	if len(s) < 2 || s[len(s)-1] != byte(OP_CHECKSIG) {
		return nil, false
	}
	pushLen := int(s[0])
	if pushLen != 33 && pushLen != 65 {
		return nil, false
	}
	if len(s) != 1+pushLen+1 {
		return nil, false
	}
	return s[1 : 1+pushLen], true
}
