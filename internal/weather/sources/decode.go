package sources

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The upstream feeds are loose about numeric types: the same field can
// arrive as 40, "40" or "". flexInt and flexFloat decode either form,
// treating empty and null as zero.

type flexInt int

func (v *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*v = 0
		return nil
	}
	*v = flexInt(f)
	return nil
}

type flexFloat float64

func (v *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*v = 0
		return nil
	}
	*v = flexFloat(f)
	return nil
}

// optFloat decodes like flexFloat but keeps absence distinguishable.
type optFloat struct {
	value float64
	set   bool
}

func (v *optFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v.value = f
	v.set = true
	return nil
}

func (v optFloat) ptr() *float64 {
	if !v.set {
		return nil
	}
	f := v.value
	return &f
}

// decodeJSON unmarshals into dst, reporting raw decode failures distinctly
// from schema problems.
func decodeJSON(data []byte, dst any) error {
	return json.Unmarshal(data, dst)
}
