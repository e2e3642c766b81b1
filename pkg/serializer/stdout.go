package serializer

import (
	"encoding/json"
	"fmt"
)

// StdoutSerializer is a serializer that outputs data to stdout in JSON format.
//
// Deprecated: Use Writer with NewStdoutWriter(FormatJSON) instead for more
// flexibility and consistent API. StdoutSerializer is maintained for backward
// compatibility.
type StdoutSerializer struct {
}

// Serialize outputs the given data to stdout in JSON format.
// It implements the Serializer interface.
func (s *StdoutSerializer) Serialize(v any) error {
	j, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize to json: %w", err)
	}

	fmt.Println(string(j))
	return nil
}
