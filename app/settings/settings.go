package settings

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are the engine options read from the environment. Everything has a
// working default; the engine never requires configuration to run.
type Settings struct {
	// SynchronizedGradual wraps the gradual drivers in their mutex-guarded
	// variants so one driver can be shared between goroutines.
	SynchronizedGradual bool `env:"RATE_SYNCHRONIZED_GRADUAL" envDefault:"false"`

	// LogDecodeErrors logs decoder rejections with their line numbers instead
	// of only returning them.
	LogDecodeErrors bool `env:"RATE_LOG_DECODE_ERRORS" envDefault:"true"`

	// LazerScoring switches accuracy-relevant object counting to the lazer
	// rules (sliders count towards accuracy).
	LazerScoring bool `env:"RATE_LAZER_SCORING" envDefault:"false"`
}

// Parse loads the settings from environment variables.
func Parse() (Settings, error) {
	var s Settings

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}

	return s, nil
}
