// Package share encodes a reduced project snapshot into a compact,
// URL-safe token and decodes it back, degrading the payload in stages
// under a fixed size budget.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// Budget is the maximum encoded token length. Tokens ride in URL
// fragments, so the budget keeps the full link well under common URL
// limits.
const Budget = 4500

// ErrInvalidToken reports a corrupt, truncated, or version-out-of-range
// token. Surfaced to the user as an invalid or expired link.
var ErrInvalidToken = errors.New("share: invalid or expired link")

// Input carries the shareable slice of one project.
type Input struct {
	Components   []*models.ComponentItem
	CommonFiles  []*models.CommonFile
	CommonAssets []*models.CommonAsset
	ProjectName  string
}

// Encode serializes the snapshot into a token. When the encoded length
// exceeds the budget the payload degrades in stages: first the assets
// are dropped, then the files and project name, finally everything but
// the components and version tag.
func Encode(in Input) (string, error) {
	stages := []*models.SharePayload{
		{
			Components:   in.Components,
			Version:      models.ShareVersion,
			CommonFiles:  in.CommonFiles,
			CommonAssets: in.CommonAssets,
			ProjectName:  in.ProjectName,
		},
		{
			Components:  in.Components,
			Version:     models.ShareVersion,
			CommonFiles: in.CommonFiles,
			ProjectName: in.ProjectName,
		},
		{
			Components: in.Components,
			Version:    models.ShareVersion,
		},
	}

	token := ""
	for _, payload := range stages {
		t, err := encodePayload(payload)
		if err != nil {
			return "", err
		}
		if len(t) <= Budget {
			return t, nil
		}
		token = t
	}
	log.Printf("share: token still %d chars after full degradation (budget %d)", len(token), Budget)
	return token, nil
}

// Decode parses a token back into a payload. A one-character transport
// mangling (space for +) is retried before giving up.
func Decode(token string) (*models.SharePayload, error) {
	for _, cand := range candidates(token) {
		if p, err := decodePayload(cand); err == nil {
			return p, nil
		}
	}
	return nil, ErrInvalidToken
}

func candidates(token string) []string {
	norm := strings.ReplaceAll(token, " ", "+")
	if norm == token {
		return []string{token}
	}
	return []string{token, norm}
}

func encodePayload(p *models.SharePayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	compressed, err := deflate(data)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(compressed), nil
}

func decodePayload(token string) (*models.SharePayload, error) {
	raw, err := decodeBase64(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	data, err := inflate(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// The components array must be present (empty is fine) and the
	// version must be an integer inside the supported range.
	var probe struct {
		Components json.RawMessage `json:"components"`
		Version    json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, ErrInvalidToken
	}
	if len(probe.Components) == 0 || probe.Components[0] != '[' {
		return nil, ErrInvalidToken
	}
	var version int
	if err := json.Unmarshal(probe.Version, &version); err != nil {
		return nil, ErrInvalidToken
	}
	if version < 1 || version > models.ShareVersion {
		return nil, ErrInvalidToken
	}

	var p models.SharePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, ErrInvalidToken
	}
	return &p, nil
}

// decodeBase64 accepts both URL-safe and standard alphabets, padded or
// not. Our encoder emits unpadded URL-safe tokens; the rest covers
// tokens that crossed other encoders.
func decodeBase64(token string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	}
	var err error
	for _, enc := range encodings {
		var b []byte
		if b, err = enc.DecodeString(token); err == nil {
			return b, nil
		}
	}
	return nil, err
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}
