package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. LockTimeout
// is a duration string such as "5s".
type JsonConfig struct {
	DataFilePath string `json:"data_file_path"`
	LockTimeout  string `json:"lock_timeout"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. When no config flag is present, nothing happens.
// Read, unmarshal, and duration-parse errors panic; the intended usage is
// defaults -> parseJson -> parseFlags during startup, where a broken config
// file should stop the process.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataFilePath != "" {
		cfg.DataFilePath = jc.DataFilePath
	}
	if jc.LockTimeout != "" {
		d, err := time.ParseDuration(jc.LockTimeout)
		if err != nil {
			panic(err)
		}
		cfg.LockTimeout = d
	}
}
