package assets

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/soocke/roimask/config"
)

// SampleConfigJSON contains the raw bytes of the sample configuration.
//
//go:embed sample_config.json
var SampleConfigJSON []byte

// SampleConfig decodes the embedded sample into a validated config.Config.
func SampleConfig() (*config.Config, error) {
	if len(SampleConfigJSON) == 0 {
		return nil, fmt.Errorf("embedded sample_config.json is empty")
	}
	cfg := config.DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(SampleConfigJSON))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	_ = cfg.Validate()
	return cfg, nil
}
