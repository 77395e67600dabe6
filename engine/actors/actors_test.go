package actors

import (
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/viper"
)

func TestPubKeyMatchesNostr(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	got, err := PubKey(sk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := nostr.GetPublicKey(sk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestPubKeyRejectsBadHex(t *testing.T) {
	if _, err := PubKey("not hex"); err == nil {
		t.Error("expected an error for a non-hex key")
	}
}

func TestNewStandIsUsable(t *testing.T) {
	s, err := NewStand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Account) != 64 {
		t.Errorf("expected a 64 char account, got %q", s.Account)
	}
	e := nostr.Event{Kind: TestFireKind, Content: "probe", Tags: nostr.Tags{}}
	if err := e.Sign(s.PrivateKey); err != nil {
		t.Fatalf("sign: %v", err)
	}
	if e.PubKey != s.Account {
		t.Errorf("expected signer %s, got %s", s.Account, e.PubKey)
	}
}

func TestStandIsPersistedInRootDir(t *testing.T) {
	dir := t.TempDir() + "/"
	conf := viper.New()
	SetDefaults(conf)
	conf.Set("rootDir", dir)
	SetConfig(conf)
	defer SetConfig(nil)

	currentStandMutex.Lock()
	currentStand.PrivateKey = ""
	currentStandMutex.Unlock()
	first := MyStand()

	currentStandMutex.Lock()
	currentStand.PrivateKey = ""
	currentStandMutex.Unlock()
	second := MyStand()

	if first.Account == "" || first.Account != second.Account {
		t.Errorf("expected the stand to be restored from %s, got %q then %q", dir, first.Account, second.Account)
	}
}

func TestDefaults(t *testing.T) {
	conf := viper.New()
	SetDefaults(conf)
	if conf.GetInt("level") != 1 {
		t.Errorf("expected level 1, got %d", conf.GetInt("level"))
	}
	if conf.GetString("owner") != "local" {
		t.Errorf("expected owner local, got %s", conf.GetString("owner"))
	}
	if conf.GetBool("publish") {
		t.Error("expected publishing to be off by default")
	}
}

func TestTerminateIsIdempotent(t *testing.T) {
	Terminate()
	Terminate()
	select {
	case <-GetTerminateChan():
	default:
		t.Error("expected the terminate channel to be closed")
	}
}
