package assembler

// State is one step of an assembly run.
type State int

const (
	StateInitialize State = iota
	StatePlaceDeclaredResources
	StatePlacePrimarySource
	StatePlaceWebDescriptor
	StatePlaceContainerConfig
	StatePlaceClasses
	StateClassifyAndPlaceDependencies
	StateOverlayNestedWars
	StateDone
)

var stateNames = []string{
	"initialize",
	"place-declared-resources",
	"place-primary-source",
	"place-web-descriptor",
	"place-container-config",
	"place-classes",
	"classify-and-place-dependencies",
	"overlay-nested-wars",
	"done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText renders the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
