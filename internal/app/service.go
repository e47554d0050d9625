package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"efr32-build/internal/adapters"
	"efr32-build/internal/ports"
)

type Service struct {
	Config       Config
	Catalog      ports.CatalogPort
	Components   ports.ComponentDatabasePort
	Installation ports.InstallationPort
	Generator    func(slcExecutable string) ports.GeneratorPort
	Templates    ports.ProjectTemplatePort
	Runner       ports.ToolRunnerPort
	Images       ports.ImageConverterPort
	Clock        func() time.Time
	NewID        func() string
}

func NewService(cfg Config) Service {
	cfg = withConfigDefaults(cfg)
	runner := adapters.NewExecToolRunner(os.Stdout)
	return Service{
		Config:       cfg,
		Catalog:      adapters.NewCatalogFileAdapter(),
		Components:   adapters.NewComponentDirAdapter(adapters.ComponentDirForSDK(cfg.SDKDir)),
		Installation: adapters.NewSlcInstallationAdapter(cfg.SlcInstallDir, cfg.Tools.SlcInstaller, runner),
		Generator: func(slcExecutable string) ports.GeneratorPort {
			return adapters.NewSlcGeneratorAdapter(slcExecutable, cfg.SDKDir, runner)
		},
		Templates: adapters.NewProjectTemplateAdapter(),
		Runner:    runner,
		Images:    adapters.NewObjcopyImageAdapter(cfg.Tools.Objcopy, runner),
		Clock:     time.Now,
		NewID:     uuid.NewString,
	}
}

func withConfigDefaults(cfg Config) Config {
	if cfg.RepoDir == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.RepoDir = wd
		}
	} else if abs, err := filepath.Abs(cfg.RepoDir); err == nil {
		cfg.RepoDir = abs
	}
	if cfg.SDKDir == "" {
		cfg.SDKDir = filepath.Join(cfg.RepoDir, "third_party", "silabs", "gecko_sdk")
	}
	if cfg.Tools.Cmake == "" {
		cfg.Tools.Cmake = "cmake"
	}
	if cfg.Tools.Ninja == "" {
		cfg.Tools.Ninja = "ninja"
	}
	if cfg.Tools.Objcopy == "" {
		cfg.Tools.Objcopy = "arm-none-eabi-objcopy"
	}
	return cfg
}
