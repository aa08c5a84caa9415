package server

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/wallet/localkey"
)

// initLocalKeys loads and decrypts the keystore, if one exists, and seeds the
// local signing backend with the derived key. A missing keystore only
// disables local signing, the remote backend stays usable.
func initLocalKeys(s *api.Server) error {
	path := s.Config.Wallet.KeystorePath

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Info().Str("path", path).Msg("No keystore found, local signing disabled")
		return nil
	}

	keystoreJSON, err := localkey.LoadKeystore(path)
	if err != nil {
		return errors.Wrap(err, "failed to load keystore")
	}

	password := s.Config.Wallet.KeystorePassword
	if password == "" {
		password, err = promptPassword("Keystore password: ")
		if err != nil {
			return err
		}
	}

	secret, err := localkey.DecryptSecret(keystoreJSON, password)
	if err != nil {
		return errors.Wrap(err, "failed to decrypt keystore")
	}

	if err := s.LocalKeys.Initialize(secret, password); err != nil {
		return errors.Wrap(err, "failed to derive local signing key")
	}

	log.Info().Str("path", path).Msg("Local signing key initialized from keystore")

	return nil
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no keystore password configured and stdin is not a terminal")
	}

	fmt.Print(prompt)

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()

	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}

	return string(password), nil
}
