// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/binder"
	"github.com/tfctl/cliwire/internal/types"
)

// Checksum prints the SHA-256 digest of a file and optionally verifies it.
//
//cli:command
func Checksum() (*cli.Command, error) {
	return &cli.Command{
		Name:      "checksum",
		Usage:     "print or verify the sha256 of a file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "sha256",
				Usage:     "expected digest, or a file of digests",
				Validator: types.SHA256Validator,
			},
		},
		Action: checksumAction,
	}, nil
}

func checksumAction(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("missing FILE argument")
	}

	sum, err := fileDigest(path)
	if err != nil {
		return err
	}

	if expected := cmd.String("sha256"); expected != "" {
		want, err := types.ParseSHA256(expected)
		if err != nil {
			return err
		}
		if !slices.ContainsFunc(want, func(d string) bool { return strings.EqualFold(d, sum) }) {
			return cli.Exit(fmt.Sprintf("%s: checksum mismatch", path), 1)
		}
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "%s  %s\n", sum, path)
	return err
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// The checksum module is loaded lazily, on its first binding.
func init() {
	binder.Register(Module+".checksum", func() (binder.Symbols, error) {
		return binder.Symbols{"Checksum": Checksum}, nil
	})
}
