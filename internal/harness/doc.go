// Package harness runs scripted session scenarios for jsondb.
//
// A scenario seeds a record set from an inline JSON document, feeds a
// fixed list of input lines to an interactive session, and checks the
// transcript and the records the session saved.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	document: |
//	  [{"BookID": 1, "Title": "Dune", "Author": "Herbert",
//	    "Genre": "SF", "Year": 1965, "BorrowedBy": []}]
//	input:
//	  - search
//	  - title
//	  - dun
//	  - quit
//	assertions:
//	  - type: output_contains
//	    text: "Similar results:"
//	  - type: final_record
//	    id: 1
//	    expect: { Title: Dune, Year: 1965 }
//
// # Assertion Types
//
//   - output_contains: the transcript contains text
//   - output_order: texts appear in the transcript in the given order
//   - final_count: the final record set has count records
//   - final_record: the record with id exists and its document fields
//     match expect (subset match, compared as JSON)
//   - final_absent: no record has id
//   - saved: whether quit persisted the record set
//   - error: the session ended with an error containing text
//
// The final record set is the one handed to the saver, or the session's
// in-memory set when nothing was saved.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/create.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
