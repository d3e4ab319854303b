// familycoin is a command line client for the FamilyCoin API. Besides raw API
// calls it can canonicalize, sign and verify messages offline.
package main

import (
	"fmt"
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"github.com/familycoin/go-familycoin/client"
	"github.com/familycoin/go-familycoin/client/deauth"
	"github.com/familycoin/go-familycoin/config"
	"github.com/familycoin/go-familycoin/core/result/failure"
	"github.com/familycoin/go-familycoin/wallet"
)

var version = "dev"

var log = logging.Logger("familycoin")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra has already printed the message
		f := failure.FromError(err)
		log.Debugw("command failed", "name", f.Name(), "failure", failure.ToModel(err))
		os.Exit(1)
	}
}

// settings is filled in by the root command before any subcommand runs.
type settings struct {
	config.Config
}

func (s *settings) keys() wallet.FileKeys {
	return wallet.FileKeys{Path: s.KeyFile}
}

// client builds an API client that reports expired sessions on stderr.
func (s *settings) client(cmd *cobra.Command) (*client.Client, error) {
	endpoint, err := s.EndpointURL()
	if err != nil {
		return nil, err
	}

	registry := &deauth.Registry{}
	registry.Register(func() {
		fmt.Fprintln(cmd.ErrOrStderr(), "session is no longer authorized, please log in again")
	})

	opts := []client.Option{
		client.WithTimeout(s.Timeout),
		client.WithDeauthNotifier(registry),
		client.WithHeader("User-Agent", "familycoin/"+version),
	}
	if s.CacheSize > 0 {
		opts = append(opts, client.WithResponseCache(s.CacheSize, s.CacheTTL))
	}
	if s.AuthHeuristics {
		opts = append(opts, client.WithAuthClassifier(client.DetailClassifier))
	}
	return client.New(endpoint, opts...)
}

func newRootCmd() *cobra.Command {
	var configFile string
	s := &settings{}

	cmd := &cobra.Command{
		Use:          "familycoin",
		Short:        "FamilyCoin wallet client",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cmd, configFile)
			if err != nil {
				return err
			}
			s.Config = c
			return setLogLevel(c.LogLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is familycoin.yaml in the user config dir or ./)")
	cmd.PersistentFlags().String("endpoint", "", "FamilyCoin API endpoint")
	cmd.PersistentFlags().String("key-file", "", "PKCS8 PEM private key file")
	cmd.PersistentFlags().Duration("timeout", 0, "request timeout")
	cmd.PersistentFlags().String("log-level", "", `log level ("debug", "info", "warn", "error")`)

	cmd.AddCommand(
		newCanonicalizeCmd(),
		newSignCmd(s),
		newVerifyCmd(),
		newPubkeyCmd(s),
		newCallCmd(s),
		newBalanceCmd(s),
		newTransferCmd(s),
	)
	return cmd
}

func setLogLevel(level string) error {
	lvl, err := logging.LevelFromString(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logging.SetAllLoggers(lvl)
	return nil
}

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}
