package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/familycoin/go-familycoin/core/canonical"
	"github.com/familycoin/go-familycoin/core/payload"
	"github.com/familycoin/go-familycoin/principal/ed25519/verifier"
	"github.com/familycoin/go-familycoin/wallet"
)

func newCanonicalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canonicalize [file|-]",
		Short: "Print the canonical form of a JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := canonical.CanonicalizeJSON(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newSignCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "sign [file|-]",
		Short: "Sign a JSON message and print the signed payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			priv, err := s.keys().PrivateKeyPEM()
			if err != nil {
				return err
			}
			p, err := payload.Sign(priv, json.RawMessage(data))
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}
}

func newVerifyCmd() *cobra.Command {
	var publicKeyFile string
	cmd := &cobra.Command{
		Use:   "verify --public-key <file> [payload|-]",
		Short: "Verify a signed payload against a public key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := os.ReadFile(publicKeyFile)
			if err != nil {
				return fmt.Errorf("reading public key: %w", err)
			}
			v, err := verifier.ParsePEM(string(pub))
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var p payload.SignedPayload
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("decoding payload: %w", err)
			}
			if err := payload.Verify(v, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid signature by %s\n", v.DID())
			return nil
		},
	}
	cmd.Flags().StringVar(&publicKeyFile, "public-key", "", "SubjectPublicKeyInfo PEM file")
	cobra.CheckErr(cmd.MarkFlagRequired("public-key"))
	return cmd
}

func newPubkeyCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key and did:key of the configured private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := s.keys().PublicKeyPEM()
			if err != nil {
				return err
			}
			v, err := verifier.ParsePEM(pub)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pub)
			fmt.Fprintln(cmd.OutOrStdout(), v.DID())
			return nil
		},
	}
}

func newCallCmd(s *settings) *cobra.Command {
	var (
		data   string
		sign   bool
		params []string
	)
	cmd := &cobra.Command{
		Use:   "call METHOD PATH",
		Short: "Send a request to the API and print the response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("invalid query parameter %q, expected key=value", p)
				}
				query.Add(k, v)
			}

			var body any
			if data != "" {
				if !json.Valid([]byte(data)) {
					return errors.New("--data is not valid JSON")
				}
				body = json.RawMessage(data)
			}
			if sign {
				if body == nil {
					return errors.New("--sign requires --data")
				}
				priv, err := s.keys().PrivateKeyPEM()
				if err != nil {
					return err
				}
				p, err := payload.Sign(priv, body)
				if err != nil {
					return err
				}
				body = p
			}

			c, err := s.client(cmd)
			if err != nil {
				return err
			}
			res, err := c.Issue(cmd.Context(), args[0], args[1], body, nil, query)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().BoolVar(&sign, "sign", false, "send the body as a signed payload")
	cmd.Flags().StringArrayVarP(&params, "query", "q", nil, "query parameter as key=value (repeatable)")
	return cmd
}

func newBalanceCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the balance of the configured key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.client(cmd)
			if err != nil {
				return err
			}
			balance, err := wallet.New(c, s.keys()).Balance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(balance, 'f', -1, 64))
			return nil
		},
	}
}

func newTransferCmd(s *settings) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "transfer RECIPIENT_PUBLIC_KEY_FILE AMOUNT",
		Short: "Send FamilyCoin to the holder of a public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading recipient key: %w", err)
			}
			if _, err := verifier.ParsePEM(string(to)); err != nil {
				return err
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			c, err := s.client(cmd)
			if err != nil {
				return err
			}
			detail, err := wallet.New(c, s.keys()).Transfer(cmd.Context(), string(to), amount, note)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), detail)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "transfer note")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(cmd.OutOrStdout())
	return err
}
