package library

// Stand is the signing identity of a test stand. Reports fired from the stand are signed with PrivateKey.
type Stand struct {
	PrivateKey string
	SeedWords  string
	Account    Account
}

type Account = string

type Sha256 = string

// Owner identifies whoever holds a design session (a player, a browser tab, a bot).
type Owner = string
