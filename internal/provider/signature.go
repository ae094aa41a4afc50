package provider

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
)

// ErrMissingCredentials is returned when either provider secret is empty.
// Callers must treat it as a configuration fault, not a transient one.
var ErrMissingCredentials = errors.New("provider credentials are not configured")

// Signature computes the request signature the reseller API expects:
// the lowercase hex MD5 digest of the API ID concatenated with the API
// key. The provider reuses the same signature per credential pair, so the
// function must be deterministic.
func Signature(apiID, apiKey string) (string, error) {
	if apiID == "" || apiKey == "" {
		return "", ErrMissingCredentials
	}
	sum := md5.Sum([]byte(apiID + apiKey))
	return hex.EncodeToString(sum[:]), nil
}
