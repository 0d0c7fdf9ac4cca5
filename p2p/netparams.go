package p2p

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ScripterRon/bitcoincore/chainhash"
)

// Network selects which set of protocol constants a process runs
// under. Configure must be called with one of these before any other
// package function is used.
type Network string

const (
	Production Network = "production"
	Test       Network = "test"
)

// NetParams bundles every network-scoped constant: wire magic,
// address/version bytes, genesis identity, and the maximum
// proof-of-work target.
type NetParams struct {
	Network            Network
	Magic              uint32
	AddressVersion     byte
	DumpedKeyVersion   byte
	GenesisHash        chainhash.Hash
	GenesisTime        uint32
	MaxTargetBits      uint32
	MinPeerVersion     uint32
	ApplicationName    string
	SupportedServices  uint64
}

var (
	paramsOnce sync.Once
	params     *NetParams
	paramsErr  error
)

// Configure performs the library's one-shot network-parameter
// selection. It must be called exactly once, before any other
// function in this package that reads network parameters; a second
// call returns a Configuration error.
func Configure(network Network, minPeerVersion uint32, applicationName string, supportedServices uint64) (*NetParams, error) {
	var err error
	paramsOnce.Do(func() {
		if strings.TrimSpace(applicationName) == "" {
			err = errors.New("p2p: application name is required")
			return
		}
		if minPeerVersion == 0 {
			err = errors.New("p2p: minimum peer version must be positive")
			return
		}
		p, cerr := buildParams(network, minPeerVersion, applicationName, supportedServices)
		if cerr != nil {
			err = cerr
			return
		}
		params = p
	})
	if err != nil {
		paramsErr = err
		return nil, coreErr(ErrConfiguration, err.Error())
	}
	if paramsErr != nil {
		return nil, coreErr(ErrConfiguration, paramsErr.Error())
	}
	if !ran {
		return nil, coreErr(ErrConfiguration, "network already configured")
	}
	return params, nil
}

// Params returns the previously configured NetParams, failing with a
// Configuration error if Configure was never called.
func Params() (*NetParams, error) {
	if params == nil {
		return nil, coreErr(ErrConfiguration, "network parameters not configured")
	}
	return params, nil
}

func buildParams(network Network, minPeerVersion uint32, applicationName string, services uint64) (*NetParams, error) {
	switch network {
	case Production:
		hash, err := chainhash.NewHashFromStr("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26")
		if err != nil {
			return nil, err
		}
		return &NetParams{
			Network:           Production,
			Magic:             0xd9b4bef9,
			AddressVersion:    0x00,
			DumpedKeyVersion:  0x80,
			GenesisHash:       hash,
			GenesisTime:       1231006505,
			MaxTargetBits:     0x1d00ffff,
			MinPeerVersion:    minPeerVersion,
			ApplicationName:   applicationName,
			SupportedServices: services,
		}, nil
	case Test:
		hash, err := chainhash.NewHashFromStr("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943")
		if err != nil {
			return nil, err
		}
		return &NetParams{
			Network:           Test,
			Magic:             0xdab5bffa,
			AddressVersion:    0x6f,
			DumpedKeyVersion:  0xef,
			GenesisHash:       hash,
			GenesisTime:       1296688602,
			MaxTargetBits:     0x207fffff,
			MinPeerVersion:    minPeerVersion,
			ApplicationName:   applicationName,
			SupportedServices: services,
		}, nil
	default:
		return nil, fmt.Errorf("p2p: unrecognized network %q", network)
	}
}

// MaxTarget expands MaxTargetBits into a full-precision big integer.
func (p *NetParams) MaxTarget() *big.Int {
	exponent := p.MaxTargetBits >> 24
	mantissa := p.MaxTargetBits & 0x007fffff
	target := big.NewInt(int64(mantissa))
	if exponent > 3 {
		target.Lsh(target, 8*uint(exponent-3))
	} else {
		target.Rsh(target, 8*uint(3-exponent))
	}
	return target
}

// UserAgent returns the conventional "/name:version/" user-agent
// string this library advertises in its version message.
func (p *NetParams) UserAgent(libraryVersion string) string {
	return fmt.Sprintf("/%s:%s/", p.ApplicationName, libraryVersion)
}
