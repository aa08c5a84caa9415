package localkey

// Manager holds the session's locally derived signing key in memory.
type Manager interface {
	// Initialize derives the ed25519 key from the locally-authenticated
	// secret and keeps it in memory until Clear.
	Initialize(secret, password string) error

	// PrivateKey returns a copy of the held key, or nil when uninitialized.
	PrivateKey() []byte

	// IsInitialized reports whether a key is held.
	IsInitialized() bool

	// Clear wipes the held key. Called on logout.
	Clear()
}

// KeystoreJSON is the encrypted at-rest form of the derived seed.
type KeystoreJSON struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Crypto  struct {
		Ciphertext   string `json:"ciphertext"`
		CipherParams struct {
			IV string `json:"iv"`
		} `json:"cipherparams"`
		Cipher    string `json:"cipher"`
		KDF       string `json:"kdf"`
		KDFParams struct {
			DKLen int    `json:"dklen"`
			Salt  string `json:"salt"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
		} `json:"kdfparams"`
		MAC string `json:"mac"`
	} `json:"crypto"`
}

// ScryptParams defines scrypt KDF parameters for the keystore.
type ScryptParams struct {
	DKLen int
	Salt  []byte
	N     int
	R     int
	P     int
}

// DefaultScryptParams returns the keystore KDF parameters.
func DefaultScryptParams() *ScryptParams {
	const (
		scryptDKLen = 32
		scryptN     = 262144 // CPU/memory cost parameter (2^18)
		scryptR     = 8
		scryptP     = 1
	)

	return &ScryptParams{
		DKLen: scryptDKLen,
		N:     scryptN,
		R:     scryptR,
		P:     scryptP,
	}
}
