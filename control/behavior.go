package control

import (
	"errors"
	"fmt"
)

// ErrUnknownBehavior is returned when parsing an unknown launch behavior.
var ErrUnknownBehavior = errors.New("unknown launch behavior")

// LaunchBehavior decides what pressing (or releasing) a clip pad does,
// depending on whether the clip is already launched.
type LaunchBehavior int

const (
	LaunchNoop             LaunchBehavior = iota // noop
	LaunchTrigger                                // unlaunched:trigger, launched:noop
	LaunchRetrigger                              // unlaunched:noop, launched:retrigger
	LaunchTriggerRetrigger                       // unlaunched:trigger, launched:retrigger
	LaunchRelease                                // unlaunched:noop, launched:release
	LaunchTriggerRelease                         // unlaunched:trigger, launched:release
)

// Action is the engine call sequence a behavior resolves to.
type Action int

const (
	ActionNoop      Action = iota
	ActionLaunch           // launchClip
	ActionRetrigger        // stopClip, launchClip
	ActionStop             // stopClip
)

var behaviorNames = map[LaunchBehavior]string{
	LaunchNoop:             "noop",
	LaunchTrigger:          "unlaunched:trigger, launched:noop",
	LaunchRetrigger:        "unlaunched:noop, launched:retrigger",
	LaunchTriggerRetrigger: "unlaunched:trigger, launched:retrigger",
	LaunchRelease:          "unlaunched:noop, launched:release",
	LaunchTriggerRelease:   "unlaunched:trigger, launched:release",
}

func (b LaunchBehavior) String() string {
	if s, ok := behaviorNames[b]; ok {
		return s
	}
	return fmt.Sprintf("LaunchBehavior(%d)", int(b))
}

// ParseLaunchBehavior parses the engine's textual launch behavior.
func ParseLaunchBehavior(s string) (LaunchBehavior, error) {
	for b, name := range behaviorNames {
		if name == s {
			return b, nil
		}
	}
	return LaunchNoop, fmt.Errorf("%w: %q", ErrUnknownBehavior, s)
}

// Action returns what to do for a clip in the given launch state.
func (b LaunchBehavior) Action(launched bool) Action {
	if !launched {
		switch b {
		case LaunchTrigger, LaunchTriggerRetrigger, LaunchTriggerRelease:
			return ActionLaunch
		}
		return ActionNoop
	}
	switch b {
	case LaunchRetrigger, LaunchTriggerRetrigger:
		return ActionRetrigger
	case LaunchRelease, LaunchTriggerRelease:
		return ActionStop
	}
	return ActionNoop
}

// MarshalText implements encoding.TextMarshaler.
func (b LaunchBehavior) MarshalText() ([]byte, error) {
	s, ok := behaviorNames[b]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBehavior, int(b))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *LaunchBehavior) UnmarshalText(text []byte) error {
	v, err := ParseLaunchBehavior(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
