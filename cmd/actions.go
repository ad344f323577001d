package cmd

import (
	"fmt"
	"os"

	"firestige.xyz/callscript/internal/action"
	"firestige.xyz/callscript/internal/config"
	"firestige.xyz/callscript/internal/media/cache"
	"firestige.xyz/callscript/pkg/variable"
)

// loadedSet is an action set built against a fresh variable namespace. Media
// cached while building lives until Media is flushed.
type loadedSet struct {
	Config  *config.ActionSetConfig
	Names   *variable.Names
	Media   *cache.Store
	Actions []action.Action
}

func loadActionSet(path string, cfg *config.GlobalConfig) (*loadedSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	setConfig, err := config.ParseActionSetAuto(data, path)
	if err != nil {
		return nil, err
	}

	names := variable.NewNames()
	store := cache.New()
	builder := action.NewBuilder(names, cfg.Media.RTPStream(), store)
	actions, err := builder.BuildAll(setConfig)
	if err != nil {
		return nil, err
	}

	return &loadedSet{
		Config:  setConfig,
		Names:   names,
		Media:   store,
		Actions: actions,
	}, nil
}

// configOrDefaults returns the loaded global configuration, falling back to
// defaults when the root pre-run did not happen.
func configOrDefaults() *config.GlobalConfig {
	if globalConfig != nil {
		return globalConfig
	}
	cfg, err := config.Load("")
	if err != nil {
		exitWithError("failed to load default configuration", err)
	}
	return cfg
}
