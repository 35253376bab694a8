package driver

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// Expectation is the outcome a script under testdata/scripts declares.
type Expectation struct {
	ResultType string // "output" or "parse_error"
	Value      string // golden file name or error message substring
}

var expectRegex = regexp.MustCompile(`^//\s*expect(_parse_error)?:\s*(.*)`)

// parseExpectation looks for a leading comment such as
//
//	// expect: loops.js
//	// expect_parse_error: message
func parseExpectation(script string) (*Expectation, error) {
	scanner := bufio.NewScanner(strings.NewReader(script))
	for scanner.Scan() {
		matches := expectRegex.FindStringSubmatch(scanner.Text())
		if len(matches) != 3 {
			continue
		}
		resultType := "output"
		if matches[1] != "" {
			resultType = "parse_error"
		}
		return &Expectation{ResultType: resultType, Value: strings.TrimSpace(matches[2])}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script content: %w", err)
	}
	return nil, fmt.Errorf("no expectation comment found (e.g., // expect: name.js)")
}

func TestScripts(t *testing.T) {
	scriptDir := filepath.Join("testdata", "scripts")
	files, err := os.ReadDir(scriptDir)
	if err != nil {
		t.Fatalf("Failed to read script directory %q: %v", scriptDir, err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".ts") {
			continue
		}
		scriptPath := filepath.Join(scriptDir, file.Name())
		t.Run(file.Name(), func(t *testing.T) {
			content, err := os.ReadFile(scriptPath)
			if err != nil {
				t.Fatalf("Failed to read script file %q: %v", scriptPath, err)
			}
			expectation, err := parseExpectation(string(content))
			if err != nil {
				t.Fatalf("%s: %v", scriptPath, err)
			}

			output, err := NewTranspiler().TransformFile(scriptPath)
			switch expectation.ResultType {
			case "parse_error":
				if err == nil {
					t.Fatalf("Expected parse error containing %q, but the transform succeeded", expectation.Value)
				}
				detail := err.Error()
				if diags := Diagnostics(err); len(diags) > 0 {
					detail = (&Failure{Diagnostics: diags}).Detail()
				}
				if !strings.Contains(detail, expectation.Value) {
					t.Errorf("Expected parse error containing %q, got:\n%s", expectation.Value, detail)
				}
			default:
				if err != nil {
					t.Fatalf("Unexpected error: %v\n%s", err, (&Failure{Diagnostics: Diagnostics(err)}).Detail())
				}
				golden, err := os.ReadFile(filepath.Join(scriptDir, expectation.Value))
				if err != nil {
					t.Fatalf("Failed to read golden file: %v", err)
				}
				if output != string(golden) {
					t.Errorf("Output mismatch\n--- expected\n%s\n--- got\n%s", golden, output)
				}
			}
		})
	}
}
