package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// codec converts between the on-disk document and a generic map.
type codec interface {
	decode(data []byte) (map[string]any, error)
	encode(record map[string]any) ([]byte, error)
}

// codecFor selects a codec from the file extension.
func codecFor(path string) (codec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return jsonCodec{}, nil
	case ".toml":
		return tomlCodec{}, nil
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: config file extension %q (use .json, .toml or .yaml)", domain.ErrInvalidInput, ext)
	}
}

// jsonCodec reads JSON with comments and trailing commas, and writes plain
// indented JSON.
type jsonCodec struct{}

func (jsonCodec) decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}
	if record == nil {
		return nil, errors.New("top-level value is not an object")
	}
	return record, nil
}

func (jsonCodec) encode(record map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type tomlCodec struct{}

func (tomlCodec) decode(data []byte) (map[string]any, error) {
	record := make(map[string]any)
	if err := toml.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (tomlCodec) encode(record map[string]any) ([]byte, error) {
	return toml.Marshal(record)
}

type yamlCodec struct{}

func (yamlCodec) decode(data []byte) (map[string]any, error) {
	record := make(map[string]any)
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (yamlCodec) encode(record map[string]any) ([]byte, error) {
	return yaml.Marshal(record)
}
