package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ActionSetConfig is a named, ordered list of action configurations.
type ActionSetConfig struct {
	Name    string         `json:"name" yaml:"name"`
	Actions []ActionConfig `json:"actions" yaml:"actions"`
}

// ActionConfig carries the attributes of a single action. Only the fields
// relevant to Type are read; the rest stay zero.
type ActionConfig struct {
	Type string `json:"type" yaml:"type"`

	// AssignTo lists destination variables, comma separated. For ereg the
	// first name receives the whole match and the rest the numbered groups.
	AssignTo  string `json:"assign_to,omitempty" yaml:"assign_to,omitempty"`
	Variable  string `json:"variable,omitempty" yaml:"variable,omitempty"`
	Variable2 string `json:"variable2,omitempty" yaml:"variable2,omitempty"`

	// ereg
	Regexp         string `json:"regexp,omitempty" yaml:"regexp,omitempty"`
	SearchIn       string `json:"search_in,omitempty" yaml:"search_in,omitempty"` // msg | hdr | body
	Header         string `json:"header,omitempty" yaml:"header,omitempty"`
	CheckIt        bool   `json:"check_it,omitempty" yaml:"check_it,omitempty"`
	CheckItInverse bool   `json:"check_it_inverse,omitempty" yaml:"check_it_inverse,omitempty"`

	// numeric payload for assign/add/multiply/divide/test/jump/pauserestore
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	// Compare is the test operator, e.g. "equal" or ">=".
	Compare string `json:"compare,omitempty" yaml:"compare,omitempty"`
	// Distribution holds sample parameters, e.g. {distribution: normal, mean: 10, stdev: 2}.
	Distribution map[string]any `json:"distribution,omitempty" yaml:"distribution,omitempty"`

	// templated payloads
	String  string `json:"string,omitempty" yaml:"string,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
	IntCmd  string `json:"int_cmd,omitempty" yaml:"int_cmd,omitempty"`

	// Play is the media argument: a pcap path for play_pcap_* and
	// "file[,loop[,pt]]", "pause" or "resume" for rtp_stream.
	Play string `json:"play,omitempty" yaml:"play,omitempty"`
}

// Validate checks the structural requirements of the action set. Semantic
// validation of each action happens when it is built.
func (as *ActionSetConfig) Validate() error {
	if len(as.Actions) == 0 {
		return fmt.Errorf("action set %q has no actions", as.Name)
	}
	for i, a := range as.Actions {
		if strings.TrimSpace(a.Type) == "" {
			return fmt.Errorf("action[%d]: type is required", i)
		}
	}
	return nil
}

// ParseActionSet parses an action set from JSON.
func ParseActionSet(data []byte) (*ActionSetConfig, error) {
	var as ActionSetConfig
	if err := json.Unmarshal(data, &as); err != nil {
		return nil, fmt.Errorf("failed to parse action set: %w", err)
	}
	if err := as.Validate(); err != nil {
		return nil, err
	}
	return &as, nil
}

// ParseActionSetYAML parses an action set from YAML.
func ParseActionSetYAML(data []byte) (*ActionSetConfig, error) {
	var as ActionSetConfig
	if err := yaml.Unmarshal(data, &as); err != nil {
		return nil, fmt.Errorf("failed to parse action set: %w", err)
	}
	if err := as.Validate(); err != nil {
		return nil, err
	}
	return &as, nil
}

// ParseActionSetAuto picks the decoder from the file extension
// (.yaml/.yml for YAML, anything else JSON).
func ParseActionSetAuto(data []byte, filename string) (*ActionSetConfig, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return ParseActionSetYAML(data)
	default:
		return ParseActionSet(data)
	}
}
