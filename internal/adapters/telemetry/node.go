package telemetry

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"

	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/linear"
	progrockui "github.com/tiiuae/ghaf-slim-demo/internal/adapters/telemetry/progrock"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Tracer Graft node.
const TracerNodeID graft.ID = "adapter.tracer"

// Output modes selectable via --output-mode.
const (
	ModeLinear = "linear"
	ModeTape   = "tape"
	ModeQuiet  = "quiet"
)

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			switch outputMode(os.Args) {
			case ModeTape:
				return progrockui.New(), nil
			case ModeQuiet:
				return NewNoOpTracer(), nil
			default:
				return linear.New(os.Stdout), nil
			}
		},
	})
}

// outputMode peeks argv for the --output-mode flag. Cobra parses flags
// after the component graph is built, so the value is read here in both
// the "--output-mode tape" and "--output-mode=tape" spellings.
func outputMode(args []string) string {
	for i, arg := range args {
		if v, ok := strings.CutPrefix(arg, "--output-mode="); ok {
			return v
		}
		if arg == "--output-mode" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ModeLinear
}
