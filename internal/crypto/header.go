package crypto

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is a parsed signature header.
type Header struct {
	Timestamp int64
	// Signatures holds every v1 value; several are sent while a rotated
	// secret is still inside its grace period.
	Signatures []string
}

// ParseHeader parses "t=<unix>,v1=<hex>[,v1=<hex>...]". Unknown schemes are
// ignored. A header without a positive integer timestamp or without any v1
// signature is rejected.
func ParseHeader(value string) (*Header, error) {
	if strings.TrimSpace(value) == "" {
		return nil, ErrInvalidHeader
	}

	h := &Header{}
	seenTimestamp := false

	for _, part := range strings.Split(value, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "t":
			ts, err := strconv.ParseInt(val, 10, 64)
			if err != nil || ts <= 0 {
				return nil, fmt.Errorf("%w: bad timestamp %q", ErrInvalidHeader, val)
			}
			h.Timestamp = ts
			seenTimestamp = true
		case SchemeV1:
			if val != "" {
				h.Signatures = append(h.Signatures, val)
			}
		}
	}

	if !seenTimestamp {
		return nil, ErrMissingTimestamp
	}
	if len(h.Signatures) == 0 {
		return nil, ErrMissingSignature
	}
	return h, nil
}
