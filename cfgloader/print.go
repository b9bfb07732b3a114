package cfgloader

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/cqrskit/mask"
)

// printConfig prints config with `mask:"true"` fields hidden.
func printConfig(env string, config any) {
	out, err := yaml.Marshal(mask.Fields(config))
	if err != nil {
		slog.Error("[cfgloader]: failed to marshal config", "error", err.Error())
		return
	}
	slog.Info(fmt.Sprintf("[cfgloader]: loaded %s config:\n%s", env, string(out)))
}
