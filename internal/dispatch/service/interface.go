// Package service provides the delivery gateways that hand a message to the outside world.
package service

import "context"

// Supported gateway drivers.
const (
	DriverSMTP = "smtp"
	DriverLog  = "log"
)

// Supported SMTP transport security modes.
const (
	TLSModeSSL      = "ssl"
	TLSModeStartTLS = "starttls"
	TLSModeNone     = "none"
)

// Keeper decrypts configuration secrets. *secrets.Keeper implements it.
type Keeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
