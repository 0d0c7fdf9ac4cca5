package main

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"go.etcd.io/bbolt"

	"github.com/ScripterRon/bitcoincore/p2p"
)

func openTestDB(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "addrbook.db"), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(addressBookBucket)
		return err
	}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestOnAddrPersistsEntries(t *testing.T) {
	db := openTestDB(t)
	l := &addressBookListener{db: db}

	addrs := []p2p.PeerAddress{
		{Time: 1700000000, IP: net.ParseIP("1.2.3.4"), Port: 8333},
	}
	if err := l.OnAddr(nil, addrs); err != nil {
		t.Fatal(err)
	}

	err := db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(addressBookBucket)
		v := b.Get([]byte("1.2.3.4:8333"))
		if v == nil {
			t.Fatal("expected stored address entry")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestAddressBookPathJoinsDataDir(t *testing.T) {
	got := addressBookPath("/tmp/data")
	if got != "/tmp/data/addrbook.db" {
		t.Fatalf("unexpected path: %s", got)
	}
}
