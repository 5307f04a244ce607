package cli

// -----------------------------------------------------------------------------
// pos.go – shared middleware for the POS terminal CLI
// -----------------------------------------------------------------------------
// Every command file registers itself on the root via its Register*
// function. posEnvMiddleware loads .env, sets the log level and loads
// the host config — one-time. posInitMiddleware additionally binds the
// process-wide registry to the configured terminal; the terminal
// command group uses only the env variant so `terminal init` can bind
// an explicit id without the middleware racing it.
// -----------------------------------------------------------------------------

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"poskernel/core"
	"poskernel/pkg/config"
	"poskernel/pkg/utils"
)

var (
	posCfg  *config.Config
	posOnce sync.Once
)

// posEnvMiddleware prepares the host environment without touching the
// registry: .env, log level, configuration.
func posEnvMiddleware(cmd *cobra.Command, _ []string) error {
	var err error
	posOnce.Do(func() {
		// 1) .env → ENV
		_ = godotenv.Load()

		// 2) Logging level
		lvl := utils.EnvOrDefault("LOG_LEVEL", "info")
		lv, e := logrus.ParseLevel(lvl)
		if e != nil {
			err = e
			return
		}
		logrus.SetLevel(lv)

		// 3) Host configuration
		posCfg, e = config.LoadFromEnv()
		if e != nil {
			err = utils.Wrap(e, "load config")
		}
	})
	return err
}

// posInitMiddleware is posEnvMiddleware plus the terminal binding from
// config. Binding is idempotent, so repeated commands are safe.
func posInitMiddleware(cmd *cobra.Command, args []string) error {
	if err := posEnvMiddleware(cmd, args); err != nil {
		return err
	}
	if err := core.Default().InitializeTerminal(posCfg.Terminal.ID); err != nil {
		return utils.Wrapf(err, "initialize terminal %s", posCfg.Terminal.ID)
	}
	return nil
}

// posParseMinor parses a minor-unit integer amount (may be negative).
func posParseMinor(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q must be an integer of minor units", s)
	}
	return n, nil
}

// posParseQty parses a non-zero signed quantity.
func posParseQty(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("quantity %q must be a non-zero 32-bit integer", s)
	}
	return int32(n), nil
}

// posSplitLineSpec splits a SKU:QTY:MINOR triple used by sale flags.
func posSplitLineSpec(spec string) (sku string, qty int32, minor int64, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("line %q must be SKU:QTY:MINOR", spec)
	}
	if qty, err = posParseQty(parts[1]); err != nil {
		return "", 0, 0, err
	}
	if minor, err = posParseMinor(parts[2]); err != nil {
		return "", 0, 0, err
	}
	return parts[0], qty, minor, nil
}
