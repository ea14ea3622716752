package config

import (
	"encoding/json"
	"testing"
)

func FuzzLoadWithWarnings(f *testing.F) {
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"journal": {"path": "j.db", "retention": "24h"}}`))
	f.Add([]byte(`{"display": {"max_age": "1h", "ancestry": false}, "x": 1}`))
	f.Add([]byte(`{"configurations": {"a": {"name": "A", "y": 2}}}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, _, err := LoadWithWarnings("fuzz.json", data)
		if err != nil {
			return
		}
		applyDefaults(cfg)
		_, _ = Validate(cfg)
		if _, err := json.Marshal(cfg); err != nil {
			t.Errorf("Marshal() after load failed: %v", err)
		}
	})
}
