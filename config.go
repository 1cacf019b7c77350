package echochat

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config holds window and page settings.
type Config struct {
	// Window
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// ShowFPS draws the FPS/particle counter overlay.
	ShowFPS bool `yaml:"show_fps"`
	// Debug enables debug logging, including per-frame timing stats.
	Debug bool `yaml:"debug"`
	// QuitOnEscape ends the run loop when Escape is pressed.
	QuitOnEscape bool `yaml:"quit_on_escape"`

	// Seed makes particle sampling reproducible. 0 seeds from the runtime.
	Seed uint64 `yaml:"seed"`

	// LinkURL is passed to OnLink when the tagline link is clicked.
	LinkURL string `yaml:"link_url"`
	// ScreenshotDir receives PNG screenshots.
	ScreenshotDir string `yaml:"screenshot_dir"`
	// Script is an optional path to a YAML/JSON test script run at startup.
	Script string `yaml:"script"`

	// OnLink is called with LinkURL when the link is clicked. Nil logs the
	// click instead.
	OnLink func(url string) `yaml:"-"`
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Title:         "Echo Chat",
		Width:         1280,
		Height:        720,
		QuitOnEscape:  true,
		LinkURL:       "#",
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at path. An
// empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Mark(errors.Wrapf(err, "parse config %s", path), ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ECHOCHAT_* variables read through lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("ECHOCHAT_TITLE"); ok && v != "" {
		c.Title = v
	}
	if err := envInt(lookup, "ECHOCHAT_WIDTH", &c.Width); err != nil {
		return err
	}
	if err := envInt(lookup, "ECHOCHAT_HEIGHT", &c.Height); err != nil {
		return err
	}
	if err := envBool(lookup, "ECHOCHAT_SHOW_FPS", &c.ShowFPS); err != nil {
		return err
	}
	if err := envBool(lookup, "ECHOCHAT_DEBUG", &c.Debug); err != nil {
		return err
	}
	if v, ok := lookup("ECHOCHAT_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "ECHOCHAT_SEED=%q", v), ErrInvalidConfig)
		}
		c.Seed = seed
	}
	if v, ok := lookup("ECHOCHAT_SCREENSHOT_DIR"); ok && v != "" {
		c.ScreenshotDir = v
	}
	if v, ok := lookup("ECHOCHAT_LINK_URL"); ok && v != "" {
		c.LinkURL = v
	}
	if v, ok := lookup("ECHOCHAT_SCRIPT"); ok {
		c.Script = v
	}
	return c.Validate()
}

// Validate checks that the window has a usable size.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "window size %dx%d", c.Width, c.Height)
	}
	return nil
}

func envInt(lookup func(string) (string, bool), key string, dst *int) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "%s=%q", key, v), ErrInvalidConfig)
	}
	*dst = n
	return nil
}

func envBool(lookup func(string) (string, bool), key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		return errors.Wrapf(ErrInvalidConfig, "%s=%q is not a boolean", key, v)
	}
	return nil
}
