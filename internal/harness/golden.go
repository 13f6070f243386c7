package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/jsondb/internal/store"
)

// RunWithGolden executes a scenario and compares the final record set,
// encoded exactly as it would be saved, against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's record set against a golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := store.EncodeDocument(result.Records)
	if err != nil {
		return err
	}

	// Compare with golden file using goldie
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
