package cli

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driving"
)

var testStarted = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testResults is a small finished run over a three note vault.
func testResults() *domain.AnalysisResults {
	return &domain.AnalysisResults{
		RunID:     "run-1",
		VaultPath: "/vault",
		StartedAt: testStarted,
		Duration:  42 * time.Millisecond,
		Connections: []domain.NoteConnection{
			{Note: domain.Note{Path: "a.md"}, Links: []string{"b.md"}, Backlinks: []string{}},
			{Note: domain.Note{Path: "b.md"}, Links: []string{}, Backlinks: []string{"a.md"}},
			{Note: domain.Note{Path: "lonely.md"}, Links: []string{}, Backlinks: []string{}},
		},
		WeakConnections: []string{"a.md", "b.md", "lonely.md"},
		IsolatedNotes:   []string{"lonely.md"},
		TopStrength:     []domain.RankedNote{{Path: "b.md", Score: 1.5}, {Path: "a.md", Score: 1}},
		TopCentrality:   []domain.RankedNote{{Path: "a.md", Score: 1}, {Path: "b.md", Score: 1}},
		Concepts:        []domain.Concept{{Term: "graph", Frequency: 7}, {Term: "vault", Frequency: 3}},
		Relations:       domain.ConceptRelations{"graph": {"vault"}, "vault": {"graph"}},
	}
}

// mockAnalysisService records requests and serves canned results.
type mockAnalysisService struct {
	results  *domain.AnalysisResults
	runErr   error
	requests []driving.AnalysisRequest
	runs     []domain.RunSummary
	summary  *domain.ConnectionSummary
	noteArgs []string
}

func (m *mockAnalysisService) Run(_ context.Context, req driving.AnalysisRequest) (*domain.AnalysisResults, error) {
	m.requests = append(m.requests, req)
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.results, nil
}

func (m *mockAnalysisService) NoteConnections(_ context.Context, vaultPath, notePath string) (*domain.ConnectionSummary, error) {
	m.noteArgs = []string{vaultPath, notePath}
	if m.summary == nil || strings.TrimSuffix(notePath, ".md") != strings.TrimSuffix(m.summary.Path, ".md") {
		return nil, domain.ErrNotFound
	}
	return m.summary, nil
}

func (m *mockAnalysisService) GraphData(results *domain.AnalysisResults) domain.GraphData {
	data := domain.GraphData{Nodes: []domain.GraphNode{}, Links: []domain.GraphLink{}}
	for _, c := range results.Connections {
		data.Nodes = append(data.Nodes, domain.GraphNode{ID: c.ID(), Connections: c.Degree()})
		for _, l := range c.Links {
			data.Links = append(data.Links, domain.GraphLink{Source: c.ID(), Target: l, Value: 1})
		}
	}
	return data
}

func (m *mockAnalysisService) Latest(_ context.Context, _ string) (*domain.AnalysisResults, error) {
	if m.results == nil {
		return nil, domain.ErrNotFound
	}
	return m.results, nil
}

func (m *mockAnalysisService) History(_ context.Context, limit int) ([]domain.RunSummary, error) {
	if limit > 0 && len(m.runs) > limit {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockAnalysisService) Get(_ context.Context, runID string) (*domain.AnalysisResults, error) {
	if m.results == nil || m.results.RunID != runID {
		return nil, domain.ErrNotFound
	}
	return m.results, nil
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.AppSettings
	sets     map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings(), sets: make(map[string]string)}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if key != "vault.path" && key != "analysis.weak_threshold" {
		return domain.ErrInvalidInput
	}
	m.sets[key] = value
	if key == "vault.path" {
		m.settings.Vault.Path = value
	}
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"vault.path", "analysis.weak_threshold"}
}

func (m *mockSettingsService) Validate() error {
	return m.settings.Analysis.Validate()
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockWatchService runs the handler once per configured outcome.
type mockWatchService struct {
	outcomes []error
	results  *domain.AnalysisResults
	req      driving.AnalysisRequest
	startErr error
}

func (m *mockWatchService) Start(_ context.Context, req driving.AnalysisRequest, handle driving.RunHandler) error {
	m.req = req
	if m.startErr != nil {
		return m.startErr
	}
	for _, err := range m.outcomes {
		if err != nil {
			handle(nil, err)
			continue
		}
		handle(m.results, nil)
	}
	return context.Canceled
}

func (m *mockWatchService) Stop() error {
	return nil
}

type testServices struct {
	analysis *mockAnalysisService
	settings *mockSettingsService
	watch    *mockWatchService
}

// setupTestServices installs mocks and returns them with a cleanup that
// restores the previous services and resets command flags.
func setupTestServices() (*testServices, func()) {
	prevAnalysis, prevSettings, prevWatch := analysisService, settingsService, watchService

	ts := &testServices{
		analysis: &mockAnalysisService{results: testResults()},
		settings: newMockSettingsService(),
		watch:    &mockWatchService{results: testResults()},
	}
	SetServices(Services{Analysis: ts.analysis, Settings: ts.settings, Watch: ts.watch})

	return ts, func() {
		analysisService, settingsService, watchService = prevAnalysis, prevSettings, prevWatch
		resetFlags()
	}
}

func resetFlags() {
	verbose = false
	analyseJSON, analyseNoStore, analyseWeakThreshold = false, false, 0
	noteVault, noteJSON = "", false
	graphRunID = ""
	conceptsRunID, conceptsJSON = "", false
	historyLimit, historyJSON, historyShowJSON = 20, false, false
	watchNoStore, watchWeakThreshold = false, 0
}

// execute runs the root command with args and returns its combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
