package p2p

import "fmt"

// checkEmpty rejects a non-empty payload for a command whose body is
// defined to carry nothing: verack, getaddr, mempool, and filterclear.
func checkEmpty(command string, payload []byte) error {
	if len(payload) != 0 {
		return coreErr(ErrMalformed, fmt.Sprintf("%s: payload must be empty", command))
	}
	return nil
}
