package echochat

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected input, resizes and screenshots across frames
// for automated visual checks. Attach to a Page via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML or JSON test script and returns a TestRunner
// ready to be attached to a Page via SetTestRunner.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse test script"), ErrInvalidScript)
	}
	if len(script.Steps) == 0 {
		return nil, errors.Wrap(ErrInvalidScript, "no steps")
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, errors.Wrapf(ErrInvalidScript, "step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// LoadTestScriptFile reads and parses the script at path.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read test script %s", path)
	}
	return LoadTestScript(raw)
}

func knownAction(a string) bool {
	switch a {
	case "screenshot", "move", "leave", "click", "touch", "release", "swipe",
		"scroll", "scrollTo", "resize", "wait", "quit":
		return true
	}
	return false
}

// SetTestRunner attaches a TestRunner to the page. The runner's step method
// is called from Page.Update before input is polled each frame.
func (p *Page) SetTestRunner(runner *TestRunner) {
	p.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Page.Update.
func (r *TestRunner) step(p *Page) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if p.pointer.Pending() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		p.Screenshot(st.Label)
	case "move":
		p.pointer.InjectMove(st.X, st.Y)
	case "leave":
		p.pointer.InjectLeave()
	case "click":
		p.pointer.InjectClick(st.X, st.Y)
	case "touch":
		p.pointer.InjectTouch(st.X, st.Y)
	case "release":
		p.pointer.InjectRelease()
	case "swipe":
		p.pointer.InjectSwipe(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "scroll":
		p.viewport.ScrollBy(st.Y)
	case "scrollTo":
		p.viewport.ScrollTo(st.Y, scrollToSeconds, ease.InOutQuad)
	case "resize":
		p.Resize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		p.Stop()
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && p.pointer.Pending() == 0 {
		r.done = true
	}
}
