package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/subprocess/errors"
	"github.com/kbukum/subprocess/pipeline"
	"github.com/kbukum/subprocess/testutil"
)

func TestRun_ZeroExit(t *testing.T) {
	if err := pipeline.New("true").Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	err := pipeline.New(`sh -c "exit 42"`).Run(context.Background())
	if err == nil {
		t.Fatal("expected command error for non-zero exit")
	}
	if !errors.IsCommand(err) {
		t.Fatalf("expected COMMAND_FAILED, got %v", err)
	}
	code, ok := errors.ExitCode(err)
	if !ok || code != 42 {
		t.Errorf("ExitCode = (%d, %v), want (42, true)", code, ok)
	}
}

func TestStatus_NonZeroExit(t *testing.T) {
	code, err := pipeline.New(`sh -c "exit 7"`).Status(context.Background())
	if err != nil {
		t.Fatalf("the no-throw entry point must not error on non-zero exit: %v", err)
	}
	if code != 7 {
		t.Errorf("status = %d, want 7", code)
	}
}

func TestStatus_LastExitCodeWins(t *testing.T) {
	// Shell $? semantics: only the last command's status is observed,
	// so "false | true" reports success.
	code, err := pipeline.New("false").PipeCmd("true").Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("status = %d, want 0", code)
	}
}

func TestCaptureOut_RoundTrip(t *testing.T) {
	var out string
	err := pipeline.New("echo abc").CaptureOut(&out).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "abc\n" {
		t.Errorf("captured %q, want %q", out, "abc\n")
	}
}

func TestPipe_TwoStage(t *testing.T) {
	testutil.RequireBinary(t, "tr")
	var out string
	err := pipeline.New("echo hello").
		PipeCmd("tr a-z A-Z").
		CaptureOut(&out).
		Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "HELLO\n" {
		t.Errorf("captured %q, want %q", out, "HELLO\n")
	}
}

func TestPipe_Associativity(t *testing.T) {
	testutil.RequireBinary(t, "sort")
	testutil.RequireBinary(t, "head")
	ctx := context.Background()

	var left string
	// Single quotes keep the escapes out of the tokenizer's hands so
	// printf sees them intact.
	err := pipeline.New(`printf 'b\na\nc\n'`).
		Pipe(pipeline.New("sort")).
		Pipe(pipeline.New("head -n 1")).
		CaptureOut(&left).
		Run(ctx)
	if err != nil {
		t.Fatalf("left grouping failed: %v", err)
	}

	var right string
	err = pipeline.New(`printf 'b\na\nc\n'`).
		Pipe(pipeline.New("sort").Pipe(pipeline.New("head -n 1"))).
		CaptureOut(&right).
		Run(ctx)
	if err != nil {
		t.Fatalf("right grouping failed: %v", err)
	}

	if left != right {
		t.Errorf("groupings disagree: %q vs %q", left, right)
	}
	if left != "a\n" {
		t.Errorf("output = %q, want %q", left, "a\n")
	}
}

func TestInString_RoundTrip(t *testing.T) {
	testutil.RequireBinary(t, "head")
	var out string
	err := pipeline.New("head -n 2").
		InString("1\n2\n3\n4\n5").
		CaptureOut(&out).
		Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n2\n" {
		t.Errorf("captured %q, want %q", out, "1\n2\n")
	}
}

func TestErrToOut_Diversion(t *testing.T) {
	var out, errBuf string
	err := pipeline.New(`sh -c "echo oops >&2"`).
		CaptureOut(&out).
		CaptureErr(&errBuf).
		ErrToOut().
		Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "oops\n" {
		t.Errorf("diverted stderr should land in the stdout capture, got %q", out)
	}
	// ErrToOut cancels the stderr capture, so its buffer stays untouched.
	if errBuf != "" {
		t.Errorf("stderr capture should be empty, got %q", errBuf)
	}
}

func TestCaptureErr(t *testing.T) {
	var out, errBuf string
	err := pipeline.New(`sh -c "echo good; echo bad >&2"`).
		CaptureOut(&out).
		CaptureErr(&errBuf).
		Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "good\n" {
		t.Errorf("stdout capture = %q, want %q", out, "good\n")
	}
	if errBuf != "bad\n" {
		t.Errorf("stderr capture = %q, want %q", errBuf, "bad\n")
	}
}

func TestFiveStagePipeline(t *testing.T) {
	testutil.RequireBinary(t, "ps")
	testutil.RequireBinary(t, "awk")
	testutil.RequireBinary(t, "sort")
	testutil.RequireBinary(t, "uniq")
	testutil.RequireBinary(t, "head")

	code, err := pipeline.New("ps aux").
		PipeCmd(`awk '{print $2}'`).
		PipeCmd("sort").
		PipeCmd("uniq").
		PipeCmd("head -n 1").
		Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("status = %d, want 0", code)
	}
}

func TestOutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := pipeline.New("echo to-file").OutFile(path).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "to-file\n" {
		t.Errorf("file contents = %q, want %q", got, "to-file\n")
	}
}

func TestAppendFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := pipeline.New("echo one").OutFile(path).Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pipeline.New("echo two").AppendFile(path).Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "one\ntwo\n" {
		t.Errorf("file contents = %q, want %q", got, "one\ntwo\n")
	}
}

func TestInFile(t *testing.T) {
	path := testutil.WriteTempFile(t, "from a file\n")
	var out string
	err := pipeline.New("cat").InFile(path).CaptureOut(&out).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from a file\n" {
		t.Errorf("captured %q, want %q", out, "from a file\n")
	}
}

func TestErrFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "err.txt")
	err := pipeline.New(`sh -c "echo oops >&2"`).ErrFile(path).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "oops\n" {
		t.Errorf("file contents = %q, want %q", got, "oops\n")
	}
}

func TestRedirectCancelsCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	var out string
	err := pipeline.New("echo last-writer-wins").
		CaptureOut(&out).
		OutFile(path).
		Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("cancelled capture should stay empty, got %q", out)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "last-writer-wins\n" {
		t.Errorf("file contents = %q, want %q", got, "last-writer-wins\n")
	}
}

func TestPipe_RightCaptureWins(t *testing.T) {
	testutil.RequireBinary(t, "tr")
	var leftBuf, rightBuf string
	left := pipeline.New("echo merge").CaptureOut(&leftBuf)
	right := pipeline.New("tr a-z A-Z").CaptureOut(&rightBuf)
	if err := left.Pipe(right).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rightBuf != "MERGE\n" {
		t.Errorf("right capture = %q, want %q", rightBuf, "MERGE\n")
	}
	if leftBuf != "" {
		t.Errorf("left capture should be dropped, got %q", leftBuf)
	}
}

func TestBuildError_Tokenize(t *testing.T) {
	err := pipeline.New("").Run(context.Background())
	if err == nil {
		t.Fatal("expected usage error for empty command line")
	}
	if !errors.IsUsage(err) {
		t.Errorf("expected USAGE_ERROR, got %v", err)
	}
}

func TestBuildError_MissingInFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	err := pipeline.New("cat").InFile(missing).Run(context.Background())
	if err == nil {
		t.Fatal("expected OS error for missing input file")
	}
	if !errors.IsOS(err) {
		t.Errorf("expected OS_ERROR, got %v", err)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	err := pipeline.New("definitely-not-a-real-binary-xyz").Run(context.Background())
	if err == nil {
		t.Fatal("expected OS error for missing binary")
	}
	if !errors.IsOS(err) {
		t.Errorf("expected OS_ERROR, got %v", err)
	}
}

func TestWithEnv(t *testing.T) {
	var out string
	err := pipeline.New(`sh -c 'echo $PIPELINE_TEST_VAR'`, pipeline.WithEnv([]string{"PIPELINE_TEST_VAR=from-option"})).
		CaptureOut(&out).
		Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from-option\n" {
		t.Errorf("captured %q, want %q", out, "from-option\n")
	}
}

func TestWithDir(t *testing.T) {
	dir := t.TempDir()
	var out string
	err := pipeline.New("pwd", pipeline.WithDir(dir)).
		CaptureOut(&out).
		Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Symlinked temp dirs (macOS /var vs /private/var) make exact
	// comparison brittle, so resolve both sides.
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(out[:len(out)-1])
	if gotResolved != wantResolved {
		t.Errorf("pwd = %q, want %q", gotResolved, wantResolved)
	}
}

func TestID_Unique(t *testing.T) {
	a := pipeline.New("true")
	b := pipeline.New("true")
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("pipeline ids should be unique and non-empty: %q vs %q", a.ID(), b.ID())
	}
}
