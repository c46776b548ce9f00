package registry

import (
	"github.com/dukex/trialkit/pkg/nodes/trigger"
	"github.com/dukex/trialkit/pkg/protocol"
)

// RegisterDefaultNodes registers all built-in node types with the registry.
func (r *Registry) RegisterDefaultNodes() error {
	builtins := []protocol.NodeDescriptor{
		trigger.PluginDefault,
		trigger.ScheduleDefault,
		trigger.WebhookDefault,
	}

	for _, descriptor := range builtins {
		if err := r.Register(descriptor); err != nil {
			return err
		}
	}

	return nil
}
