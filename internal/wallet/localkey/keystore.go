package localkey

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// EncryptSecret encrypts a signing secret using the keystore v3 format.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func EncryptSecret(secret string, password string) (*KeystoreJSON, error) {
	//nolint:mnd // 32 is the standard salt size for scrypt
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	//nolint:mnd // 16 is the standard IV size for AES-128-CTR
	iv := make([]byte, 16)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	params := DefaultScryptParams()

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	// AES-128 uses the first 16 bytes of the derived key
	ciphertext, err := applyAES128CTR(derivedKey[:16], iv, []byte(secret))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt secret")
	}

	mac := calculateMAC(derivedKey[16:32], ciphertext)

	keystoreJSON := &KeystoreJSON{
		//nolint:mnd // 3 is the keystore v3 version number
		Version: 3,
		ID:      uuid.New().String(),
	}

	keystoreJSON.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	keystoreJSON.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	keystoreJSON.Crypto.Cipher = "aes-128-ctr"
	keystoreJSON.Crypto.KDF = "scrypt"
	keystoreJSON.Crypto.KDFParams.DKLen = params.DKLen
	keystoreJSON.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	keystoreJSON.Crypto.KDFParams.N = params.N
	keystoreJSON.Crypto.KDFParams.R = params.R
	keystoreJSON.Crypto.KDFParams.P = params.P
	keystoreJSON.Crypto.MAC = hex.EncodeToString(mac)

	return keystoreJSON, nil
}

// DecryptSecret decrypts a signing secret from the keystore v3 format.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func DecryptSecret(keystoreJSON *KeystoreJSON, password string) (string, error) {
	salt, err := hex.DecodeString(keystoreJSON.Crypto.KDFParams.Salt)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode salt")
	}

	iv, err := hex.DecodeString(keystoreJSON.Crypto.CipherParams.IV)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode IV")
	}

	ciphertext, err := hex.DecodeString(keystoreJSON.Crypto.Ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode ciphertext")
	}

	expectedMAC, err := hex.DecodeString(keystoreJSON.Crypto.MAC)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode MAC")
	}

	derivedKey, err := scrypt.Key(
		[]byte(password),
		salt,
		keystoreJSON.Crypto.KDFParams.N,
		keystoreJSON.Crypto.KDFParams.R,
		keystoreJSON.Crypto.KDFParams.P,
		keystoreJSON.Crypto.KDFParams.DKLen,
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}

	mac := calculateMAC(derivedKey[16:32], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return "", errors.New("invalid password: MAC mismatch")
	}

	plaintext, err := applyAES128CTR(derivedKey[:16], iv, ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decrypt secret")
	}

	return string(plaintext), nil
}

// SaveKeystore writes the keystore JSON to disk with restricted permissions.
func SaveKeystore(path string, keystoreJSON *KeystoreJSON) error {
	data, err := json.MarshalIndent(keystoreJSON, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal keystore")
	}

	//nolint:mnd // 0600 restricts the keystore to the owning user
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write keystore file")
	}

	return nil
}

// LoadKeystore reads a keystore JSON file from disk.
func LoadKeystore(path string) (*KeystoreJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keystore file")
	}

	keystoreJSON := new(KeystoreJSON)
	if err := json.Unmarshal(data, keystoreJSON); err != nil {
		return nil, errors.Wrap(err, "failed to parse keystore file")
	}

	return keystoreJSON, nil
}

// applyAES128CTR applies AES-128-CTR, which is symmetric for encrypt and decrypt.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func applyAES128CTR(key []byte, iv []byte, input []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	output := make([]byte, len(input))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(output, input)

	return output, nil
}

// calculateMAC calculates SHA-256(derivedKey[16:32] + ciphertext).
func calculateMAC(key []byte, ciphertext []byte) []byte {
	hasher := sha256.New()
	hasher.Write(key)
	hasher.Write(ciphertext)

	return hasher.Sum(nil)
}
