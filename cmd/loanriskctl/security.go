package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/auth"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/tlsutil"
)

func issueTokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "issue-token",
		Usage: "Signs a bearer token for the gRPC API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "client", Usage: "Token subject", Required: true},
			&cli.StringSliceFlag{Name: "role", Usage: "Granted role, repeatable", Value: []string{auth.RoleScoringClient}},
			&cli.DurationFlag{Name: "ttl", Usage: "Token lifetime", Value: time.Hour},
			&cli.StringFlag{Name: "secret", Usage: "HMAC secret", Sources: cli.EnvVars("JWT_SECRET")},
			&cli.StringFlag{Name: "private-key", Usage: "RSA private key PEM file, takes precedence over --secret"},
			&cli.StringFlag{Name: "issuer", Usage: "Token issuer", Sources: cli.EnvVars("JWT_ISSUER")},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			jwtCfg := auth.JWTConfig{
				Secret:     cmd.String("secret"),
				Issuer:     cmd.String("issuer"),
				Expiration: cmd.Duration("ttl"),
			}
			if path := cmd.String("private-key"); path != "" {
				pem, err := auth.LoadKeyFromFile(path)
				if err != nil {
					return err
				}
				jwtCfg.PrivateKeyPEM = string(pem)
			}
			if jwtCfg.Secret == "" && jwtCfg.PrivateKeyPEM == "" {
				return errors.New("either --secret or --private-key is required")
			}

			svc, err := auth.NewJWTService(jwtCfg)
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(cmd.String("client"), cmd.StringSlice("role"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, token)
			return nil
		},
	}
}

func genCertsCmd() *cli.Command {
	return &cli.Command{
		Name:  "gen-certs",
		Usage: "Writes a development CA and a server certificate for the gRPC listener",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "certs", Usage: "Output directory"},
			&cli.StringSliceFlag{Name: "host", Value: []string{"localhost", "127.0.0.1"}, Usage: "DNS name or IP, repeatable"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir := cmd.String("out")
			if err := tlsutil.GenerateSelfSignedCert(cmd.StringSlice("host"), dir); err != nil {
				return err
			}
			out := cmd.Root().Writer
			for _, name := range []string{tlsutil.CAFile, tlsutil.ServerFile, tlsutil.ServerKeyFile} {
				fmt.Fprintln(out, filepath.Join(dir, name))
			}
			return nil
		},
	}
}
