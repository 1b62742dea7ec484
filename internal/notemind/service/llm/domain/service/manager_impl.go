package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	einoModel "github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/repo"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/helper"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
	"github.com/kiosk404/echonote/internal/pkg/options"
	"github.com/kiosk404/echonote/pkg/logger"
)

var _ ModelManager = (*modelManagerImpl)(nil)

type modelManagerImpl struct {
	opts         *options.ModelOptions
	modelRepo    repo.ModelRepository
	providerRepo repo.ProviderRepository
	registry     *provider.Registry

	// "provider/model" -> einoModel.BaseChatModel
	chatModelCache sync.Map

	mu      sync.Mutex
	plugins map[string]spi.ChatModelPlugin
}

func NewModelManager(opts *options.ModelOptions, modelRepo repo.ModelRepository, providerRepo repo.ProviderRepository, registry *provider.Registry) ModelManager {
	return &modelManagerImpl{
		opts:         opts,
		modelRepo:    modelRepo,
		providerRepo: providerRepo,
		registry:     registry,
		plugins:      make(map[string]spi.ChatModelPlugin),
	}
}

func (m *modelManagerImpl) RegisterProvider(ctx context.Context, p *entity.ModelProvider) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("provider ID is required")
	}
	logger.Info("[LLM] registering provider: %s (class=%s, api=%s)", p.ID, p.ModelClass, p.API)
	return m.providerRepo.Save(ctx, p)
}

func (m *modelManagerImpl) ListProviders(ctx context.Context) ([]*entity.ModelProvider, error) {
	return m.providerRepo.FindAll(ctx)
}

func (m *modelManagerImpl) RegisterModel(ctx context.Context, instance *entity.ModelInstance) (int64, error) {
	if instance.ModelID == "" || instance.ProviderID == "" {
		return 0, fmt.Errorf("model and provider IDs are required")
	}
	if _, err := m.providerRepo.FindByID(ctx, instance.ProviderID); err != nil {
		return 0, fmt.Errorf("provider %q not registered: %w", instance.ProviderID, err)
	}
	if err := m.modelRepo.Save(ctx, instance); err != nil {
		return 0, err
	}
	m.chatModelCache.Delete(instance.Ref().String())
	logger.Debug("[LLM] registered model: %s (id=%d)", instance.Ref(), instance.ID)
	return instance.ID, nil
}

func (m *modelManagerImpl) GetModelByRef(ctx context.Context, ref entity.ModelRef) (*entity.ModelInstance, error) {
	return m.modelRepo.FindByRef(ctx, ref)
}

func (m *modelManagerImpl) GetDefaultModel(ctx context.Context) (*entity.ModelInstance, error) {
	return m.modelRepo.FindDefault(ctx)
}

func (m *modelManagerImpl) ListAllModels(ctx context.Context) ([]*entity.ModelInstance, error) {
	return m.modelRepo.FindAll(ctx)
}

func (m *modelManagerImpl) GetChatModel(ctx context.Context, ref entity.ModelRef) (einoModel.BaseChatModel, error) {
	key := ref.String()
	if cached, ok := m.chatModelCache.Load(key); ok {
		return cached.(einoModel.BaseChatModel), nil
	}
	cm, err := m.BuildChatModel(ctx, ref, nil)
	if err != nil {
		return nil, err
	}
	actual, _ := m.chatModelCache.LoadOrStore(key, cm)
	return actual.(einoModel.BaseChatModel), nil
}

func (m *modelManagerImpl) BuildChatModel(ctx context.Context, ref entity.ModelRef, params *entity.LLMParams) (einoModel.BaseChatModel, error) {
	instance, err := m.modelRepo.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if instance.Status != entity.ModelStatus_Ready {
		return nil, fmt.Errorf("model %s is %s", ref, instance.Status)
	}
	prov, err := m.providerRepo.FindByID(ctx, ref.ProviderID)
	if err != nil {
		return nil, err
	}

	plugin, err := m.chatPlugin(ref.ProviderID)
	if err != nil {
		return nil, err
	}
	cm, err := plugin.BuildChatModel(ctx, instance, prov, params)
	if err != nil {
		return nil, fmt.Errorf("build chat model for %s: %w", ref, err)
	}
	return cm, nil
}

// chatPlugin returns the registered plugin for providerID, or the generic
// OpenAI-compatible one for providers only known from configuration.
func (m *modelManagerImpl) chatPlugin(providerID string) (spi.ChatModelPlugin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.plugins[providerID]; ok {
		return p, nil
	}
	var plugin spi.ProviderPlugin = &helper.BasePlugin{PluginName: providerID}
	if factory, err := m.registry.Get(providerID); err == nil {
		plugin = factory()
	}
	chat, ok := plugin.(spi.ChatModelPlugin)
	if !ok {
		return nil, fmt.Errorf("provider %q cannot build chat models", providerID)
	}
	m.plugins[providerID] = chat
	return chat, nil
}

func (m *modelManagerImpl) Initialize(ctx context.Context) error {
	if m.opts == nil {
		return fmt.Errorf("no model options")
	}
	logger.Info("[LLM] initializing model manager (mode=%s, user_providers=%d, registry_plugins=%d)",
		m.opts.Mode, len(m.opts.Providers), m.registry.Len())

	if m.opts.Mode != options.ModelModeReplace {
		m.registerFromEnvironment(ctx)
	}

	ids := make([]string, 0, len(m.opts.Providers))
	for id := range m.opts.Providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := m.registerFromConfig(ctx, id, m.opts.Providers[id]); err != nil {
			return fmt.Errorf("provider %q: %w", id, err)
		}
	}

	ref := entity.ModelRef{ProviderID: m.opts.DefaultProvider, ModelID: m.opts.DefaultModel}
	inst, err := m.modelRepo.FindByRef(ctx, ref)
	if err != nil {
		return fmt.Errorf("default model %s is not configured", ref)
	}
	if err := m.modelRepo.SetDefault(ctx, inst.ID); err != nil {
		return err
	}

	models, _ := m.modelRepo.FindAll(ctx)
	providers, _ := m.providerRepo.FindAll(ctx)
	logger.Info("[LLM] initialization complete: %d providers, %d models, default %s", len(providers), len(models), ref)
	return nil
}

// registerFromEnvironment adds built-in providers whose credential variable
// is set, unless the configuration already names them.
func (m *modelManagerImpl) registerFromEnvironment(ctx context.Context) {
	for _, name := range m.registry.Names() {
		if _, configured := m.opts.Providers[name]; configured {
			continue
		}
		factory, err := m.registry.Get(name)
		if err != nil {
			continue
		}
		plugin := factory()
		cfg := plugin.DefaultConfig()
		if helper.ResolveEnvValue(cfg.APIKey) == "" {
			continue
		}
		logger.Info("[LLM] auto-discovered provider from environment: %s", name)
		if err := m.registerWithPlugin(ctx, plugin, cfg); err != nil {
			logger.Warn("[LLM] skipping provider %q: %v", name, err)
		}
	}
}

func (m *modelManagerImpl) registerFromConfig(ctx context.Context, id string, cfg *options.ProviderConfig) error {
	var plugin spi.ProviderPlugin = &helper.BasePlugin{PluginName: id}
	if factory, err := m.registry.Get(id); err == nil {
		plugin = factory()
	}
	return m.registerWithPlugin(ctx, plugin, cfg)
}

func (m *modelManagerImpl) registerWithPlugin(ctx context.Context, plugin spi.ProviderPlugin, cfg *options.ProviderConfig) error {
	prov, err := plugin.BuildProvider(cfg)
	if err != nil {
		return err
	}
	if err := m.RegisterProvider(ctx, prov); err != nil {
		return err
	}
	models, err := plugin.BuildModels(prov, cfg)
	if err != nil {
		return err
	}
	for _, inst := range models {
		if _, err := m.RegisterModel(ctx, inst); err != nil {
			return err
		}
	}
	return nil
}
