package driver

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	var jobs []FileJob
	for i := 0; i < 12; i++ {
		input := filepath.Join(dir, fmt.Sprintf("s%d.ts", i))
		code := fmt.Sprintf("f(%d);\n", i)
		if i == 5 {
			code = "let = ;\n"
		}
		if err := os.WriteFile(input, []byte(code), 0644); err != nil {
			t.Fatal(err)
		}
		jobs = append(jobs, FileJob{Input: input})
	}

	results, stats := NewTranspiler().WriteFiles(context.Background(), jobs, 4)
	if stats.Workers != 4 || stats.Completed != 11 || stats.Failed != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	for i, r := range results {
		if r.Input != jobs[i].Input {
			t.Fatalf("result %d out of order: %s", i, r.Input)
		}
		if i == 5 {
			if !stderrors.Is(r.Err, ErrParse) {
				t.Errorf("expected a parse failure for job 5, got %v", r.Err)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("job %d: unexpected error %v", i, r.Err)
			continue
		}
		data, err := os.ReadFile(r.Output)
		if err != nil {
			t.Fatal(err)
		}
		if expected := fmt.Sprintf("await f(self, %d);\n", i); string(data) != expected {
			t.Errorf("job %d: expected %q, got %q", i, expected, data)
		}
	}
}

func TestWriteFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []FileJob{{Input: "a.ts"}, {Input: "b.ts"}, {Input: "c.ts"}}
	results, stats := NewTranspiler().WriteFiles(ctx, jobs, 2)
	if stats.Failed != len(jobs) {
		t.Errorf("expected every job to fail, got %+v", stats)
	}
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("%s: expected an error", r.Input)
		}
	}
}

func TestWriteFilesEmpty(t *testing.T) {
	results, stats := NewTranspiler().WriteFiles(context.Background(), nil, 0)
	if len(results) != 0 || stats.Completed != 0 || stats.Workers != 1 {
		t.Errorf("unexpected results %v, %+v", results, stats)
	}
}
