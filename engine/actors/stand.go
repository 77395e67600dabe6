package actors

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"enginelab/engine/library"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/nbd-wtf/go-nostr/nip06"
	"github.com/sasha-s/go-deadlock"
)

const standFile = "stand.dat"

var currentStand library.Stand
var currentStandMutex = &deadlock.Mutex{}

// MyStand returns the signing identity of this test stand, restoring it from disk or creating a new one.
func MyStand() library.Stand {
	currentStandMutex.Lock()
	defer currentStandMutex.Unlock()
	if len(currentStand.PrivateKey) == 0 {
		if s, ok := getStandFromDisk(); ok {
			currentStand = s
		} else {
			library.LogCLI("Generating a new test stand identity, write down the seed words if you want to keep it", 4)
			s, err := NewStand()
			if err != nil {
				library.LogCLI(err.Error(), 0)
				return library.Stand{}
			}
			currentStand = s
			if err := persistCurrentStand(); err != nil {
				library.LogCLI(err.Error(), 1)
			}
		}
	}
	return currentStand
}

// NewStand derives a fresh identity from newly generated seed words.
func NewStand() (library.Stand, error) {
	seedWords, err := nip06.GenerateSeedWords()
	if err != nil {
		return library.Stand{}, fmt.Errorf("generating seed words: %w", err)
	}
	seed := nip06.SeedFromWords(seedWords)
	sk, err := nip06.PrivateKeyFromSeed(seed)
	if err != nil {
		return library.Stand{}, fmt.Errorf("deriving private key: %w", err)
	}
	pk, err := PubKey(sk)
	if err != nil {
		return library.Stand{}, err
	}
	return library.Stand{
		PrivateKey: sk,
		SeedWords:  seedWords,
		Account:    pk,
	}, nil
}

// PubKey returns the x-only public key for a hex private key, which is what nostr uses as an account.
func PubKey(privateKey string) (library.Account, error) {
	keyb, err := hex.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("decoding key from hex: %w", err)
	}
	_, pubkey := btcec.PrivKeyFromBytes(keyb)
	return hex.EncodeToString(pubkey.SerializeCompressed()[1:]), nil
}

func standPath() string {
	return MakeOrGetConfig().GetString("rootDir") + standFile
}

func persistCurrentStand() error {
	b, err := json.Marshal(currentStand)
	if err != nil {
		return err
	}
	return os.WriteFile(standPath(), b, 0600)
}

func getStandFromDisk() (s library.Stand, ok bool) {
	b, err := os.ReadFile(standPath())
	if err != nil {
		library.LogCLI(fmt.Sprintf("Error getting stand file: %s", err.Error()), 3)
		return library.Stand{}, false
	}
	if err = json.Unmarshal(b, &s); err != nil {
		library.LogCLI(fmt.Sprintf("Error parsing stand file: %s", err.Error()), 2)
		return library.Stand{}, false
	}
	return s, len(s.PrivateKey) > 0
}
