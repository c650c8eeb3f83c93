package batch

import (
	"encoding/json"
	"os"
)

// WriteManifest writes the per-file conversion results as manifest.json
// in the output directory, for tooling that post-processes the run.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
