package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.etcd.io/bbolt"

	"github.com/ScripterRon/bitcoincore/p2p"
)

func main() {
	network := flag.String("network", "test", "network name: production|test")
	peerAddr := flag.String("peer", "", "peer to connect to, host:port")
	dataDir := flag.String("datadir", ".", "directory holding the address book database")
	dryRun := flag.Bool("dry-run", false, "configure network parameters and exit")
	flag.Parse()

	params, err := p2p.Configure(p2p.Network(*network), 31402, "bitcoincore-demo", p2p.ServiceNodeNetwork)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configure failed: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("network: %s magic=%08x address_version=%d max_target_bits=%08x\n",
		params.Network, params.Magic, params.AddressVersion, params.MaxTargetBits)
	if *dryRun {
		return
	}
	if *peerAddr == "" {
		fmt.Fprintln(os.Stderr, "missing -peer")
		os.Exit(2)
	}

	if err := os.MkdirAll(*dataDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "datadir create failed: %v\n", err)
		os.Exit(2)
	}
	db, err := bbolt.Open(addressBookPath(*dataDir), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		fmt.Fprintf(os.Stderr, "address book open failed: %v\n", err)
		os.Exit(2)
	}
	defer db.Close()
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(addressBookBucket)
		return err
	}); err != nil {
		fmt.Fprintf(os.Stderr, "address book init failed: %v\n", err)
		os.Exit(2)
	}

	conn, err := net.DialTimeout("tcp", *peerAddr, 10*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial failed: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	remote := peerAddressFromConn(conn)
	peer, err := p2p.NewPeer(conn, remote, p2p.PeerConfig{
		Params: params,
		OurVersion: p2p.VersionPayload{
			ProtocolVersion: 70015,
			Services:        params.SupportedServices,
			Timestamp:       time.Now().Unix(),
			AddrRecv:        remote,
			AddrFrom:        p2p.PeerAddress{Services: params.SupportedServices},
			Nonce:           uint64(time.Now().UnixNano()),
			UserAgent:       params.UserAgent("0.1.0"),
			HasRelay:        true,
			Relay:           true,
		},
		IdleTimeout: 90 * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "peer init failed: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener := &addressBookListener{db: db}
	fmt.Println("bitcoincore-demo: handshaking")
	if err := peer.Run(ctx, listener); err != nil {
		fmt.Fprintf(os.Stderr, "peer run ended: %v\n", err)
	}
}

func peerAddressFromConn(conn net.Conn) p2p.PeerAddress {
	host, portStr, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return p2p.PeerAddress{}
	}
	var port uint16
	fmt.Sscanf(portStr, "%d", &port)
	return p2p.PeerAddress{IP: net.ParseIP(host), Port: port}
}
