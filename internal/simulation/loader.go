package simulation

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a scenario by id from dir, trying "<id>.yaml", "<id>.yml", then
// "<id>.json" in turn. If dir is empty or none of those files exist, it
// returns the built-in DefaultScenario.
func Load(dir, scenarioID string) (Scenario, error) {
	if dir == "" {
		return DefaultScenario(), nil
	}
	for _, name := range []string{scenarioID + ".yaml", scenarioID + ".yml", scenarioID + ".json"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Scenario{}, err
		}
		var scenario Scenario
		if filepath.Ext(name) == ".json" {
			if err := json.Unmarshal(data, &scenario); err != nil {
				return Scenario{}, err
			}
		} else {
			if err := yaml.Unmarshal(data, &scenario); err != nil {
				return Scenario{}, err
			}
		}
		return scenario, nil
	}
	return DefaultScenario(), nil
}
