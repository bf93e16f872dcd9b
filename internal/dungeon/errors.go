package dungeon

import (
	"errors"
	"fmt"
)

// ErrRetriable is wrapped by every placement failure that a fresh attempt
// with new random draws may avoid.
var ErrRetriable = errors.New("dungeon: retriable generation failure")

var (
	ErrRoomPlacement        = fmt.Errorf("%w: room placement", ErrRetriable)
	ErrCorridorConnectivity = fmt.Errorf("%w: corridor connectivity", ErrRetriable)
	ErrFeaturePlacement     = fmt.Errorf("%w: feature placement", ErrRetriable)
)

// IsRetriable reports whether err is a placement failure.
func IsRetriable(err error) bool {
	return errors.Is(err, ErrRetriable)
}
