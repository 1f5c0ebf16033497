//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"mindmap-backend/infrastructure/config"
)

// ProviderSet is the full set of application providers.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideStore,
	ProvidePromptLibrary,
	ProvideAIService,
	ProvideNodeService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer builds the dependency graph from the loaded
// configuration.
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
