package tmc

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// serviceKeyEntry is one row of an on-disk encryption-key table, read the
// way the teacher's src/deviceid.go reads tocalls.yaml: a plain YAML
// sequence of small mappings, unmarshaled straight into tagged structs
// rather than redsea's original keyfile format (which this pack carries
// no parser for).
type serviceKeyEntry struct {
	EncryptionID uint16 `yaml:"encryption_id"`
	XorVal       uint8  `yaml:"xor_val"`
	XorStart     uint8  `yaml:"xor_start"`
	NRot         uint8  `yaml:"n_rot"`
}

// LoadServiceKeys reads a YAML file of TMC encryption keys, one entry per
// broadcaster's encryption_id, for Service.SetServiceKeys. A typical file:
//
//	- encryption_id: 1
//	  xor_val: 0x42
//	  xor_start: 3
//	  n_rot: 5
func LoadServiceKeys(path string) (map[uint16]ServiceKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var entries []serviceKeyEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing service key file %s: %w", path, err)
	}

	keys := make(map[uint16]ServiceKey, len(entries))
	for _, e := range entries {
		keys[e.EncryptionID] = ServiceKey{XorVal: e.XorVal, XorStart: e.XorStart, NRot: e.NRot}
	}

	return keys, nil
}
