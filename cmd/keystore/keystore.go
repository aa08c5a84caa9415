package keystore

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github/splitpot/go-relay/internal/config"
	"github/splitpot/go-relay/internal/util/command"
	"github/splitpot/go-relay/internal/wallet/localkey"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("keystore",
		newInit(),
	)
}

func newInit() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Creates an encrypted keystore for the local signing backend",
		Long: `Reads a signing secret and a password from the terminal, encrypts
the secret and writes the keystore file to the configured path. Refuses to
overwrite an existing keystore.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	cfg := config.DefaultServiceConfigFromEnv()
	path := cfg.Wallet.KeystorePath

	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("keystore already exists at %s", path)
	}

	secret, err := readLine("Signing secret: ")
	if err != nil {
		return err
	}

	if secret == "" {
		return errors.New("signing secret must not be empty")
	}

	password, err := readPassword("Keystore password: ")
	if err != nil {
		return err
	}

	confirm, err := readPassword("Repeat password: ")
	if err != nil {
		return err
	}

	if password != confirm {
		return errors.New("passwords do not match")
	}

	keystoreJSON, err := localkey.EncryptSecret(secret, password)
	if err != nil {
		return errors.Wrap(err, "failed to encrypt secret")
	}

	if err := localkey.SaveKeystore(path, keystoreJSON); err != nil {
		return errors.Wrap(err, "failed to write keystore")
	}

	log.Info().Str("path", path).Str("id", keystoreJSON.ID).Msg("Keystore created")

	return nil
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}

	return strings.TrimSpace(line), nil
}

func readPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal")
	}

	fmt.Print(prompt)

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()

	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}

	return string(password), nil
}
