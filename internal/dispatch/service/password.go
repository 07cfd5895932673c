package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register the keeper drivers accepted in SMTP_PASSWORD_KEEPER_URI.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeeperOpener opens a Keeper for a gocloud.dev secrets URI.
type KeeperOpener func(ctx context.Context, uri string) (Keeper, error)

// OpenKeeper opens a gocloud.dev secrets keeper.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func OpenKeeper(ctx context.Context, uri string) (Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open secrets keeper: %w", err)
	}
	return keeper, nil
}

// ResolvePassword returns the SMTP password. When keeperURI is empty the value is
// used as is; otherwise it is the base64 ciphertext produced by the keeper.
func ResolvePassword(ctx context.Context, open KeeperOpener, keeperURI, value string) (string, error) {
	if keeperURI == "" || value == "" {
		return value, nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("smtp password is not valid base64: %w", err)
	}

	keeper, err := open(ctx, keeperURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt smtp password: %w", err)
	}

	return string(plaintext), nil
}
