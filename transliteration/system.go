package transliteration

import (
	"errors"
	"fmt"
	"strings"
)

// System names a romanization standard.
type System string

const (
	Revised          System = "revised"
	McCuneReischauer System = "mccune_reischauer"

	DefaultSystem = Revised
)

// ErrUnknownSystem is returned for a system name with no rule table.
var ErrUnknownSystem = errors.New("unknown system")

var systemAliases = map[string]System{
	"revised":           Revised,
	"rr":                Revised,
	"mccune_reischauer": McCuneReischauer,
	"mccune-reischauer": McCuneReischauer,
	"mr":                McCuneReischauer,
}

// Systems lists the supported systems, default first.
func Systems() []System {
	return []System{Revised, McCuneReischauer}
}

// ParseSystem resolves a user-supplied system name. Matching ignores case
// and surrounding space.
func ParseSystem(name string) (System, error) {
	s, ok := systemAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
	return s, nil
}

func (s System) String() string {
	return string(s)
}
