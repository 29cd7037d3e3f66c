package requests

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Symptoms accepts a JSON string or a list of strings and always holds the
// comma-joined form. Absent or null symptoms decode to "".
type Symptoms string

func (s *Symptoms) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*s = Symptoms(strings.TrimSpace(value))
		return nil
	case '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		*s = JoinSymptoms(values)
		return nil
	}
	return fmt.Errorf("symptoms must be a string or a list of strings")
}

func JoinSymptoms(values []string) Symptoms {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			cleaned = append(cleaned, value)
		}
	}
	return Symptoms(strings.Join(cleaned, ", "))
}

func (s Symptoms) String() string {
	return string(s)
}
