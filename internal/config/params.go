package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ParamsFileName is the conventional name of the job parameters file
const ParamsFileName = "params.json"

// Params is the three-switch job parameters file submitted with an export job
type Params struct {
	StoreUniqueId                     bool
	StoreJsonGraphBottomUp            bool
	StoreEntireJsonGraphOnProjectInfo bool
}

// DefaultParams returns the parameters used when no file is supplied
func DefaultParams() Params {
	return Params{
		StoreUniqueId:                     true,
		StoreJsonGraphBottomUp:            true,
		StoreEntireJsonGraphOnProjectInfo: true,
	}
}

// ParseParams reads a job parameters file, returning defaults when it does not exist.
// Switches missing from the file keep their default.
func ParseParams(path string) (Params, error) {
	params := DefaultParams()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return params, nil
	}
	if err != nil {
		return params, fmt.Errorf("read params: %w", err)
	}

	if err := json.Unmarshal(data, &params); err != nil {
		return DefaultParams(), fmt.Errorf("parse params: %w", err)
	}
	return params, nil
}

// Apply overrides the config's export switches with the job parameters
func (p Params) Apply(c *Config) {
	c.Export.StoreUniqueIDs = Bool(p.StoreUniqueId)
	c.Export.BottomUp = Bool(p.StoreJsonGraphBottomUp)
	c.Export.ProjectWide = Bool(p.StoreEntireJsonGraphOnProjectInfo)
}
