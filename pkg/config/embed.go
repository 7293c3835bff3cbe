package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultsTOML []byte

// bytesProvider feeds an in-memory document to koanf. Only ReadBytes is
// meaningful, since the toml parser does the decoding.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("bytesProvider requires a parser")
}
