package logarchive

import (
	"encoding/json"
	"fmt"

	"pixelgardenlabs.io/pgl-robocopy/pkg/util"
)

// Format selects the compression container for archived log files.
type Format string

const (
	Gz  Format = "gz"
	Zst Format = "zst"
)

var formatToString = map[Format]string{
	Gz:  "gz",
	Zst: "zst",
}

var stringToFormat map[string]Format

func init() {
	stringToFormat = util.InvertMap(formatToString)
}

func (f Format) String() string {
	if str, ok := formatToString[f]; ok {
		return str
	}
	return string(Gz)
}

// Extension returns the file name suffix for the format, including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat parses a string into a Format. An empty string defaults to gz.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Gz, nil
	}
	if f, ok := stringToFormat[s]; ok {
		return f, nil
	}
	return "", fmt.Errorf("invalid log archive format: %q. Must be 'gz' or 'zst'", s)
}

// MarshalJSON implements the json.Marshaler interface.
func (f Format) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Format) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("log archive format should be a string, got %s", data)
	}
	format, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = format
	return nil
}
