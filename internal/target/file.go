package target

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brizzai/target-wizard/internal/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a descriptor from a JSON or YAML file. The format is chosen
// by extension; anything other than .json is parsed as YAML.
func LoadFile(filePath string) (*Descriptor, error) {
	logger.Info("Loading target descriptor", zap.String("file", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read target file: %w", err)
	}

	var d Descriptor
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		err = json.Unmarshal(data, &d)
	} else {
		err = yaml.Unmarshal(data, &d)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse target file %s: %w", filePath, err)
	}

	if d.PayloadCount() > 1 {
		logger.Warn("Target descriptor carries more than one payload",
			zap.String("name", d.Name),
			zap.String("resolved_type", string(InferType(&d))),
		)
	}
	return &d, nil
}

// WriteFile exports a target to filename, as JSON for .json files and YAML
// otherwise
func WriteFile(t Target, filename string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		data, err = json.MarshalIndent(t, "", "  ")
	} else {
		data, err = yaml.Marshal(t)
	}
	if err != nil {
		return fmt.Errorf("failed to encode target %s: %w", t.Name, err)
	}

	return os.WriteFile(filename, data, 0o644)
}
