package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted session.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the JSON document the session starts from.
	Document string `yaml:"document"`

	// AbortKeyword overrides the delete confirmation keyword.
	AbortKeyword string `yaml:"abort_keyword,omitempty"`

	// Input lists the lines typed by the operator, in order.
	// Input ends after the last line.
	Input []string `yaml:"input"`

	// Assertions validate the transcript and the final record set.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the transcript or the final record set.
type Assertion struct {
	// Type selects the check, see the package documentation.
	Type string `yaml:"type"`

	// Text is used by output_contains and error.
	Text string `yaml:"text,omitempty"`

	// Texts is used by output_order.
	Texts []string `yaml:"texts,omitempty"`

	// Count is used by final_count.
	Count int `yaml:"count,omitempty"`

	// ID is used by final_record and final_absent.
	ID int `yaml:"id,omitempty"`

	// Expect holds document fields for final_record (subset match).
	Expect map[string]interface{} `yaml:"expect,omitempty"`

	// Saved is used by saved.
	Saved bool `yaml:"saved,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputOrder    = "output_order"
	AssertFinalCount     = "final_count"
	AssertFinalRecord    = "final_record"
	AssertFinalAbsent    = "final_absent"
	AssertSaved          = "saved"
	AssertError          = "error"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate required fields
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Document == "" {
		return fmt.Errorf("document is required (use [] for an empty catalog)")
	}

	if len(s.Input) == 0 {
		return fmt.Errorf("input list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains, AssertError:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertOutputOrder:
		if len(a.Texts) < 2 {
			return fmt.Errorf("assertions[%d]: at least two texts are required for output_order", index)
		}
	case AssertFinalCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for final_count", index)
		}
	case AssertFinalRecord:
		if a.ID <= 0 {
			return fmt.Errorf("assertions[%d]: a positive id is required for final_record", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_record", index)
		}
	case AssertFinalAbsent:
		if a.ID <= 0 {
			return fmt.Errorf("assertions[%d]: a positive id is required for final_absent", index)
		}
	case AssertSaved:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
