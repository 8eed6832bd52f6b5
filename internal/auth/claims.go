package auth

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// IdentityClaims is the subset of identity-token claims consumers care about.
type IdentityClaims struct {
	Subject string `mapstructure:"sub"`
	Email   string `mapstructure:"email"`
	Name    string `mapstructure:"name"`
}

// DecodeIdentityClaims extracts the identity fields from the raw claims map
// produced by ParseIDToken. Unknown claims are ignored; a token without a
// usable sub claim is rejected.
func DecodeIdentityClaims(claims map[string]any) (*IdentityClaims, error) {
	if _, err := ExtractClaimString(claims, "sub"); err != nil {
		return nil, fmt.Errorf("identity claims: %w", err)
	}

	var out IdentityClaims
	if err := mapstructure.Decode(claims, &out); err != nil {
		return nil, fmt.Errorf("decode identity claims: %w", err)
	}
	return &out, nil
}

// ExtractClaimString extracts a string claim from a raw claims map.
func ExtractClaimString(claims map[string]any, claimField string) (string, error) {
	rawValue, ok := claims[claimField]
	if !ok {
		return "", fmt.Errorf("claim field %s not found", claimField)
	}

	value, ok := rawValue.(string)
	if !ok {
		return "", fmt.Errorf("claim field %s is not a string", claimField)
	}

	if value == "" {
		return "", fmt.Errorf("claim field %s is empty", claimField)
	}

	return value, nil
}
