package format

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/quickview/java/explain"
)

type JSONEncoder struct {
	w           io.Writer
	explanation explain.Explanation
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(x explain.Explanation) error {
	e.explanation = x
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.explanation, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type YAMLEncoder struct {
	w           io.Writer
	explanation explain.Explanation
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(x explain.Explanation) error {
	e.explanation = x
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(e.explanation)
}
