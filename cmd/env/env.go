package env

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github/splitpot/go-relay/internal/config"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the effective SERVER_* environment",
		Long: `Loads .env.local (if present), resolves the full service config
from ENV and prints every SERVER_* variable as currently seen by the process.
Secrets are masked.`,
		Run: func(_ *cobra.Command, _ []string) {
			runEnv()
		},
	}
}

func runEnv() {
	_ = gotenv.OverLoad(".env.local")

	// force config resolution so defaults materialize in the output below
	_ = config.DefaultServiceConfigFromEnv()

	vars := make([]string, 0)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SERVER_") {
			vars = append(vars, maskSecret(kv))
		}
	}

	sort.Strings(vars)

	for _, kv := range vars {
		fmt.Println(kv)
	}
}

// maskSecret hides values of keys that carry credentials.
func maskSecret(kv string) string {
	key, _, found := strings.Cut(kv, "=")
	if !found {
		return kv
	}

	for _, marker := range []string{"_API_KEY", "_AUTH_TOKEN", "_SECRET", "_PASSWORD"} {
		if strings.HasSuffix(key, marker) {
			return key + "=********"
		}
	}

	return kv
}
