package load

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion guards against decoding snapshots written by an
// incompatible definition layout.
const snapshotVersion = 1

type snapshot struct {
	Version     int           `msgpack:"version"`
	Definitions []*Definition `msgpack:"definitions"`
}

// EncodeSnapshot serializes the definitions in a compact binary form.
// Deployments with large definition sets decode a snapshot at start
// instead of re-parsing the definition directory.
func EncodeSnapshot(defs ...*Definition) ([]byte, error) {
	return msgpack.Marshal(&snapshot{
		Version:     snapshotVersion,
		Definitions: defs,
	})
}

// DecodeSnapshot deserializes a definition set written by
// EncodeSnapshot.
func DecodeSnapshot(data []byte) ([]*Definition, error) {
	s := &snapshot{}
	if err := msgpack.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", s.Version, snapshotVersion)
	}
	return s.Definitions, nil
}
