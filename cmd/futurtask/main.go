package main

import (
	"fmt"
	"os"
	"time"

	"futurtask/internal/api"
	"futurtask/internal/assetcache"
	"futurtask/internal/cli"
	"futurtask/internal/config"
	"futurtask/internal/services"
	"futurtask/internal/state"
)

func main() {
	root := cli.NewRootCommand(connect)
	defer root.Close()

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		root.Close()
		os.Exit(1)
	}
}

// connect opens the repository chosen for the current environment and
// wires the services, the asset cache worker and the API on top of it
func connect(cfg *config.Config) (api.BusinessAPI, func() error, error) {
	factory := config.NewRepositoryFactory(config.GetEnvironment(), cfg)
	repo, err := factory.CreateRepository()
	if err != nil {
		return nil, nil, fmt.Errorf("error creating repository: %w", err)
	}

	container := services.NewServiceContainer(
		repo,
		state.New(),
		time.Now,
		services.ProfileDefaults{
			Name:  cfg.Profiles.DefaultName,
			Icon:  cfg.Profiles.DefaultIcon,
			Color: cfg.Profiles.DefaultColor,
		},
		services.StatsLimits{
			ChartTags: cfg.Stats.ChartTagLimit,
			TagList:   cfg.Stats.TagListLimit,
			Recent:    cfg.Stats.RecentLimit,
		},
	)

	worker, err := assetcache.NewWorker(repo, assetcache.NewHTTPFetcher(cfg.Cache.FetchTimeout), assetcache.Options{
		Prefix:  cfg.Cache.Prefix,
		Version: cfg.Cache.Version,
		Origin:  cfg.Cache.Origin,
	})
	if err != nil {
		repo.Close()
		return nil, nil, err
	}

	return api.NewBusinessAPI(container, worker), repo.Close, nil
}
