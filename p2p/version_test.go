package p2p

import (
	"net"
	"testing"
)

func sampleVersion(hasRelay bool) VersionPayload {
	return VersionPayload{
		ProtocolVersion: 70015,
		Services:        ServiceNodeNetwork,
		Timestamp:       1700000000,
		AddrRecv:        PeerAddress{Services: ServiceNodeNetwork, IP: net.ParseIP("127.0.0.1"), Port: 8333},
		AddrFrom:        PeerAddress{Services: ServiceNodeNetwork, IP: net.ParseIP("127.0.0.2"), Port: 8333},
		Nonce:           1234567890,
		UserAgent:       "/bitcoincore:0.1/",
		StartHeight:     500000,
		Relay:           true,
		HasRelay:        hasRelay,
	}
}

func TestVersionRoundTrip(t *testing.T) {
	v := sampleVersion(true)
	raw, err := EncodeVersionPayload(v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeVersionPayload(raw)
	if err != nil {
		t.Fatal(err)
	}
	if back.ProtocolVersion != v.ProtocolVersion || back.UserAgent != v.UserAgent || back.StartHeight != v.StartHeight {
		t.Fatalf("mismatch: %+v vs %+v", v, *back)
	}
	if !back.HasRelay || !back.Relay {
		t.Fatal("expected relay byte to survive round trip")
	}
}

func TestVersionMissingRelayByteTolerated(t *testing.T) {
	v := sampleVersion(false)
	raw, err := EncodeVersionPayload(v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeVersionPayload(raw)
	if err != nil {
		t.Fatalf("expected missing relay byte to be tolerated, got error: %v", err)
	}
	if back.HasRelay {
		t.Fatal("expected HasRelay false when byte omitted")
	}
	if !back.Relay {
		t.Fatal("expected implicit relay=true when byte omitted")
	}
}

func TestVersionRejectsTrailingBytes(t *testing.T) {
	raw, _ := EncodeVersionPayload(sampleVersion(true))
	raw = append(raw, 0x00, 0x01)
	if _, err := DecodeVersionPayload(raw); err == nil {
		t.Fatal("expected trailing bytes to be rejected")
	}
}
