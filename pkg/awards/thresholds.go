package awards

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/qsopipe/qsopipe/pkg/logger"
)

// Default award thresholds, overridable via a JSON config file.
var DefaultThresholds = map[string]int{
	"DXCC": 100, // unique countries
	"VUCC": 100, // unique grids
}

// ConfigEnvVar overrides the threshold config file location.
const ConfigEnvVar = "QSOPIPE_AWARDS_CONFIG"

const configFilename = "awards.json"

// ThresholdsPath resolves the JSON file holding threshold overrides:
// the ConfigEnvVar path when set, otherwise awards.json under the
// user config directory.
func ThresholdsPath() (string, error) {
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "qsopipe", configFilename), nil
}

// LoadThresholds returns the defaults overlaid with any overrides from
// the config file. Keys are uppercased; only positive integer values
// are accepted; unknown keys are preserved for future awards. A
// missing or malformed file falls back to the defaults.
func LoadThresholds() map[string]int {
	out := make(map[string]int, len(DefaultThresholds))
	for k, v := range DefaultThresholds {
		out[k] = v
	}

	path, err := ThresholdsPath()
	if err != nil {
		return out
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return out
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Get().Warn("ignoring malformed awards config: " + path)
		return out
	}
	for k, v := range raw {
		if k != "" && v > 0 {
			out[Norm(k)] = v
		}
	}
	return out
}
