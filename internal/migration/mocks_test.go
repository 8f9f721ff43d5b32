package migration

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/catalog"
	"github.com/promptdeck/platform/backend/internal/config"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/promptdeck/platform/backend/internal/provider"
	"github.com/promptdeck/platform/backend/testhelper"
	"gorm.io/datatypes"
)

func testCatalog() catalog.Registry {
	return catalog.NewRegistry([]*catalog.Definition{
		{
			Category: "alpha",
			Name:     "Alpha",
			Type:     "alpha",
			BaseURL:  "https://alpha.example.com/v1",
			DefaultSettings: map[string]interface{}{
				"timeoutSeconds": 30,
			},
			Models: []catalog.ModelDefinition{
				{Name: "alpha-large", ContextWindow: 8192, MaxOutputTokens: 2048, Capabilities: []string{"chat"}},
			},
			DeprecatedKeys: []string{"legacy_mode"},
		},
		{
			Category: "beta",
			Name:     "Beta",
			Type:     "beta",
			BaseURL:  "https://beta.example.com/v1",
			Models: []catalog.ModelDefinition{
				{Name: "beta-small", ContextWindow: 4096, MaxOutputTokens: 1024, Capabilities: []string{"chat"}},
				{Name: "beta-medium", ContextWindow: 16384, MaxOutputTokens: 4096, Capabilities: []string{"chat", "tools"}},
			},
		},
	})
}

func testConfig() *config.MigrationConfig {
	return &config.MigrationConfig{
		BatchSize:         2,
		Concurrency:       2,
		RecordThreshold:   100,
		BaseDuration:      30 * time.Second,
		PerRecordDuration: 500 * time.Millisecond,
	}
}

func newTestOrchestrator(source *mockRecordSource, registry *mockRegistry, store *mockStore) *Orchestrator {
	return NewOrchestrator(source, registry, store, testCatalog(), nil, nil, testConfig(), testhelper.NewTestLogger(false))
}

func newRecord(category string) *legacy.Record {
	return &legacy.Record{
		ID:        uuid.New(),
		Category:  category,
		RawConfig: datatypes.JSONMap{"apiKey": "secret"},
	}
}

var errSimulatedOutage = errors.New("simulated store outage")

// mockRecordSource is an in-memory RecordSource. listFailures arms ListPending
// to fail after N successful calls; markErr makes every MarkMigrated fail.
type mockRecordSource struct {
	mu            sync.Mutex
	records       map[uuid.UUID]*legacy.Record
	listCalls     int
	failListAfter int
	markErr       error
	failMarkIDs   map[uuid.UUID]bool
	upsertErr     error
}

func newMockRecordSource(records ...*legacy.Record) *mockRecordSource {
	source := &mockRecordSource{
		records:       map[uuid.UUID]*legacy.Record{},
		failListAfter: -1,
	}
	for _, record := range records {
		copied := *record
		source.records[record.ID] = &copied
	}
	return source
}

func (s *mockRecordSource) GetByID(ctx context.Context, id uuid.UUID) (*legacy.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, legacy.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *mockRecordSource) ListPending(ctx context.Context) ([]legacy.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failListAfter >= 0 && s.listCalls >= s.failListAfter {
		return nil, errSimulatedOutage
	}
	s.listCalls++

	var pending []legacy.Record
	for _, record := range s.records {
		if !record.Migrated {
			pending = append(pending, *record)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].ID.String() < pending[j].ID.String()
	})
	return pending, nil
}

func (s *mockRecordSource) MarkMigrated(ctx context.Context, id uuid.UUID, targetResourceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	if s.failMarkIDs[id] {
		return errSimulatedOutage
	}
	record, ok := s.records[id]
	if !ok {
		return legacy.ErrRecordNotFound
	}
	record.Migrated = true
	record.TargetResourceID = &targetResourceID
	return nil
}

func (s *mockRecordSource) Upsert(ctx context.Context, record *legacy.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *mockRecordSource) CountMigrated(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, record := range s.records {
		if record.Migrated {
			count++
		}
	}
	return count, nil
}

func (s *mockRecordSource) migratedIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uuid.UUID
	for _, record := range s.records {
		if record.Migrated {
			ids = append(ids, record.ID)
		}
	}
	return ids
}

// mockRegistry is an in-memory Registry
type mockRegistry struct {
	mu              sync.Mutex
	providers       map[uuid.UUID]*provider.Provider
	models          map[uuid.UUID]*provider.Model
	createErr       error
	createModelErr  error
	deleteErr       error
	deleteModelErr  error
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		providers: map[uuid.UUID]*provider.Provider{},
		models:    map[uuid.UUID]*provider.Model{},
	}
}

func (r *mockRegistry) seedProvider(name, providerType string) *provider.Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &provider.Provider{ID: uuid.New(), Name: name, Type: providerType, Enabled: true}
	r.providers[p.ID] = p
	return p
}

func (r *mockRegistry) GetProvider(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, provider.ErrProviderNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *mockRegistry) GetProviderByName(ctx context.Context, name string) (*provider.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, provider.ErrProviderNotFound
}

func (r *mockRegistry) CreateProvider(ctx context.Context, p *provider.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copied := *p
	r.providers[p.ID] = &copied
	return nil
}

func (r *mockRegistry) UpdateProvider(ctx context.Context, p *provider.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[p.ID]; !ok {
		return provider.ErrProviderNotFound
	}
	copied := *p
	r.providers[p.ID] = &copied
	return nil
}

func (r *mockRegistry) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.providers[id]; !ok {
		return provider.ErrProviderNotFound
	}
	delete(r.providers, id)
	return nil
}

func (r *mockRegistry) GetModel(ctx context.Context, id uuid.UUID) (*provider.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[id]
	if !ok {
		return nil, provider.ErrModelNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *mockRegistry) CreateModel(ctx context.Context, m *provider.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createModelErr != nil {
		return r.createModelErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	copied := *m
	r.models[m.ID] = &copied
	return nil
}

func (r *mockRegistry) DeleteModel(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteModelErr != nil {
		return r.deleteModelErr
	}
	if _, ok := r.models[id]; !ok {
		return provider.ErrModelNotFound
	}
	delete(r.models, id)
	return nil
}

func (r *mockRegistry) providerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.providers)
}

func (r *mockRegistry) modelCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.models)
}

// mockStore is an in-memory Store
type mockStore struct {
	mu          sync.Mutex
	plans       map[uuid.UUID]*MigrationPlan
	results     map[uuid.UUID][]MigrationResult
	backups     map[uuid.UUID]*BackupRecord
	entries     map[uuid.UUID][]BackupEntry
	savePlanErr error
	backupErr   error
	entriesErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		plans:   map[uuid.UUID]*MigrationPlan{},
		results: map[uuid.UUID][]MigrationResult{},
		backups: map[uuid.UUID]*BackupRecord{},
		entries: map[uuid.UUID][]BackupEntry{},
	}
}

func (s *mockStore) SavePlan(ctx context.Context, plan *MigrationPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savePlanErr != nil {
		return s.savePlanErr
	}
	copied := *plan
	s.plans[plan.ID] = &copied
	return nil
}

func (s *mockStore) GetPlan(ctx context.Context, id uuid.UUID) (*MigrationPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	copied := *plan
	return &copied, nil
}

func (s *mockStore) ListPlans(ctx context.Context) ([]MigrationPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var plans []MigrationPlan
	for _, plan := range s.plans {
		plans = append(plans, *plan)
	}
	return plans, nil
}

func (s *mockStore) SaveResult(ctx context.Context, result *MigrationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the GORM store's ordering.
	s.results[result.PlanID] = append([]MigrationResult{*result}, s.results[result.PlanID]...)
	return nil
}

func (s *mockStore) ListResults(ctx context.Context, planID uuid.UUID) ([]MigrationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MigrationResult{}, s.results[planID]...), nil
}

func (s *mockStore) SaveBackup(ctx context.Context, backup *BackupRecord, entries []BackupEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *backup
	s.backups[backup.PlanID] = &copied
	s.entries[backup.ID] = append([]BackupEntry{}, entries...)
	return nil
}

func (s *mockStore) LatestBackup(ctx context.Context, planID uuid.UUID) (*BackupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backupErr != nil {
		return nil, s.backupErr
	}
	backup, ok := s.backups[planID]
	if !ok {
		return nil, nil
	}
	copied := *backup
	return &copied, nil
}

func (s *mockStore) GetBackupEntries(ctx context.Context, backupID uuid.UUID) ([]BackupEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entriesErr != nil {
		return nil, s.entriesErr
	}
	return append([]BackupEntry{}, s.entries[backupID]...), nil
}

func (s *mockStore) MarkBackupConsumed(ctx context.Context, backupID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, backup := range s.backups {
		if backup.ID == backupID {
			backup.Consumed = true
			return nil
		}
	}
	return ErrNoBackup
}
