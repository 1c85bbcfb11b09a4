package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash"
)

// Codec lists the signer methods the handlers rely on.
// Implementations must be safe for concurrent use.
type Codec interface {
	EncodeWatchesCursor(watchedAt int64, episodeID int64) string
	DecodeWatchesCursor(token string) (int64, int64, error)

	EncodeListCursor(addedAt int64, showID int64) string
	DecodeListCursor(token string) (int64, int64, error)
}

// HMAC implements Codec using HMAC-SHA256 for integrity.
// It encodes payloads as base64 URL without padding.
type HMAC struct {
	key []byte
	h   func() hash.Hash
}

// NewHMAC creates an HMAC signer with the provided secret key.
func NewHMAC(key []byte) *HMAC {
	return &HMAC{key: append([]byte(nil), key...), h: sha256.New}
}

// seal signs the payload and returns a base64url token payload||sig.
func (c *HMAC) seal(payload []byte) string {
	mac := hmac.New(c.h, c.key)
	mac.Write(payload)
	sig := mac.Sum(nil)
	buf := append(payload, sig...)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// open verifies the token and returns the payload bytes.
func (c *HMAC) open(token string, minPayloadLen int) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	if len(raw) < minPayloadLen+32 {
		return nil, errors.New("invalid_cursor_length")
	}
	payload := raw[:len(raw)-32]
	sig := raw[len(raw)-32:]
	mac := hmac.New(c.h, c.key)
	mac.Write(payload)
	expected := mac.Sum(nil)
	if !hmac.Equal(sig, expected) {
		return nil, errors.New("invalid_cursor_signature")
	}
	return payload, nil
}

// encodePair packs two int64s big-endian.
func (c *HMAC) encodePair(a, b int64) string {
	payload := make([]byte, 16)
	binary.BigEndian.PutUint64(payload[0:8], uint64(a))
	binary.BigEndian.PutUint64(payload[8:16], uint64(b))
	return c.seal(payload)
}

func (c *HMAC) decodePair(token string) (int64, int64, error) {
	payload, err := c.open(token, 16)
	if err != nil {
		return 0, 0, err
	}
	a := int64(binary.BigEndian.Uint64(payload[0:8]))
	b := int64(binary.BigEndian.Uint64(payload[8:16]))
	return a, b, nil
}

// Watch history cursor: watched_at unix microseconds + episode id.
// Microsecond resolution matches the TIMESTAMPTZ columns; coarser values
// would make the keyset predicate skip rows inside the truncated interval.
func (c *HMAC) EncodeWatchesCursor(watchedAt int64, episodeID int64) string {
	return c.encodePair(watchedAt, episodeID)
}

func (c *HMAC) DecodeWatchesCursor(token string) (int64, int64, error) {
	return c.decodePair(token)
}

// List membership cursor: added_at unix microseconds + show id.
func (c *HMAC) EncodeListCursor(addedAt int64, showID int64) string {
	return c.encodePair(addedAt, showID)
}

func (c *HMAC) DecodeListCursor(token string) (int64, int64, error) {
	return c.decodePair(token)
}
