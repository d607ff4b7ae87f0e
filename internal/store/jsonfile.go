package store

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/natefinch/atomic"
)

// ReadJSON loads a JSON state file into v. A missing or empty file is
// not an error: it reports found=false and leaves v untouched, so
// callers fall back to defaults.
func ReadJSON(path string, v interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// WriteJSON writes v atomically so readers in other processes never see
// a torn file.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
