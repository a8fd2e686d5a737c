package auth

import (
	"fmt"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

// TOTPKey is the material handed to the admin during two-factor enrollment.
type TOTPKey struct {
	Secret string
	URL    string
	QRPNG  []byte
}

// GenerateTOTPKey creates a new TOTP secret for the given account and
// renders the provisioning URL as a QR code PNG for authenticator apps.
func GenerateTOTPKey(issuer, account string) (*TOTPKey, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
	})
	if err != nil {
		return nil, fmt.Errorf("totp generate: %w", err)
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("totp qr encode: %w", err)
	}

	return &TOTPKey{
		Secret: key.Secret(),
		URL:    key.URL(),
		QRPNG:  png,
	}, nil
}

// ValidateTOTP checks a one-time code against the stored secret.
func ValidateTOTP(code, secret string) bool {
	return totp.Validate(code, secret)
}
