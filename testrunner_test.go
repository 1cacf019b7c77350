package echochat

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestLoadTestScriptJSON(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "move", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "scattered"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "move" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScriptYAML(t *testing.T) {
	data := []byte(`
steps:
  - action: resize
    width: 375
    height: 812
  - action: swipe
    fromX: 10
    fromY: 20
    toX: 300
    toY: 400
    frames: 8
  - action: quit
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[0]; st.Width != 375 || st.Height != 812 {
		t.Errorf("resize step = %+v", st)
	}
	if st := runner.steps[1]; st.FromX != 10 || st.FromY != 20 || st.ToX != 300 || st.ToY != 400 || st.Frames != 8 {
		t.Errorf("swipe step = %+v", st)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not a script`))
	if !errors.Is(err, ErrInvalidScript) {
		t.Errorf("err = %v, want ErrInvalidScript", err)
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if !errors.Is(err, ErrInvalidScript) {
		t.Errorf("err = %v, want ErrInvalidScript", err)
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "dance"}]}`))
	if !errors.Is(err, ErrInvalidScript) {
		t.Errorf("err = %v, want ErrInvalidScript", err)
	}
}

func TestLoadTestScriptFile(t *testing.T) {
	path := writeTempFile(t, "script.yaml", "steps:\n  - action: leave\n")
	runner, err := LoadTestScriptFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.steps) != 1 {
		t.Errorf("steps = %d, want 1", len(runner.steps))
	}
}

func TestRunnerStep_Move(t *testing.T) {
	p := newTestPage(t, 640, 480)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "move", "x": 50, "y": 60}]}`))
	if err != nil {
		t.Fatal(err)
	}
	p.SetTestRunner(runner)

	runner.step(p)
	if p.pointer.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", p.pointer.Pending())
	}
	if runner.Done() {
		t.Error("runner should wait for the injected event to drain")
	}
	p.pointer.processInjected()
	runner.step(p)
	if !runner.Done() {
		t.Error("runner should be done once the queue drains")
	}
	if x, y, ok := p.pointer.Position(); !ok || x != 50 || y != 60 {
		t.Errorf("Position = (%v, %v, %v), want (50, 60, true)", x, y, ok)
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	p := newTestPage(t, 320, 240)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	p.SetTestRunner(runner)

	for i := 0; i < 3; i++ {
		runner.step(p)
		if len(p.shots.pending()) != 0 {
			t.Fatalf("frame %d: screenshot queued during wait", i)
		}
	}
	runner.step(p)
	if got := p.shots.pending(); len(got) != 1 || got[0] != "after" {
		t.Errorf("pending screenshots = %v, want [after]", got)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_ResizeScrollQuit(t *testing.T) {
	p := newTestPage(t, 800, 600)
	runner, err := LoadTestScript([]byte(`
steps:
  - action: resize
    width: 375
    height: 812
  - action: scroll
    y: 120
  - action: quit
`))
	if err != nil {
		t.Fatal(err)
	}
	p.SetTestRunner(runner)

	runner.step(p)
	if w, h := p.Field().Size(); w != 375 || h != 812 {
		t.Errorf("field size = %dx%d, want 375x812", w, h)
	}
	runner.step(p)
	assertNear(t, "ScrollY", p.Viewport().ScrollY, 120)
	runner.step(p)
	if !p.stopped {
		t.Error("quit should stop the page")
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
