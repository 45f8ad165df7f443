package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/tnglf1337/studyhuppy/internal/model"
	"github.com/tnglf1337/studyhuppy/internal/repository"
)

// ── Shared setup ──

type testRepos struct {
	repo          *repository.Repository
	module        *mockModulRepo
	sessions      *mockSessionRepo
	lernplaene    *mockLernplanRepo
	modulEvents   *mockModulEventRepo
	sessionEvents *mockSessionEventRepo
}

func newTestRepos() *testRepos {
	t := &testRepos{
		module:        newMockModulRepo(),
		sessions:      newMockSessionRepo(),
		lernplaene:    newMockLernplanRepo(),
		modulEvents:   newMockModulEventRepo(),
		sessionEvents: newMockSessionEventRepo(),
	}
	t.repo = &repository.Repository{
		Modul:        t.module,
		ModulEvent:   t.modulEvents,
		Session:      t.sessions,
		SessionEvent: t.sessionEvents,
		Lernplan:     t.lernplaene,
	}
	return t
}

// ── Mock ModulRepository ──

type mockModulRepo struct {
	module    map[string]*model.Modul
	saveErr   error
	deleteErr error
}

func newMockModulRepo() *mockModulRepo {
	return &mockModulRepo{module: make(map[string]*model.Modul)}
}

func (m *mockModulRepo) Save(_ context.Context, modul *model.Modul) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	stored := *modul
	m.module[modul.FachID] = &stored
	return nil
}

func (m *mockModulRepo) SaveAll(ctx context.Context, module []model.Modul) error {
	for i := range module {
		if err := m.Save(ctx, &module[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockModulRepo) GetByFachID(_ context.Context, fachID string) (*model.Modul, error) {
	if modul, ok := m.module[fachID]; ok {
		copied := *modul
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockModulRepo) ListByUsername(_ context.Context, username string) ([]model.Modul, error) {
	var result []model.Modul
	for _, modul := range m.module {
		if modul.Username == username {
			result = append(result, *modul)
		}
	}
	return result, nil
}

func (m *mockModulRepo) ListByUsernameAndActive(_ context.Context, username string, active bool) ([]model.Modul, error) {
	var result []model.Modul
	for _, modul := range m.module {
		if modul.Username == username && modul.Active == active {
			result = append(result, *modul)
		}
	}
	return result, nil
}

func (m *mockModulRepo) CountByUsername(_ context.Context, username string) (int64, error) {
	var count int64
	for _, modul := range m.module {
		if modul.Username == username {
			count++
		}
	}
	return count, nil
}

func (m *mockModulRepo) DeleteByFachID(_ context.Context, fachID string) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.module[fachID]; !ok {
		return 0, nil
	}
	delete(m.module, fachID)
	return 1, nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions  map[string]*model.Session
	saveCalls int
	saveErr   error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Save(_ context.Context, session *model.Session) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	stored := *session
	stored.Blocks = append([]model.Block(nil), session.Blocks...)
	m.sessions[session.FachID] = &stored
	return nil
}

func (m *mockSessionRepo) GetByFachID(_ context.Context, fachID string) (*model.Session, error) {
	if session, ok := m.sessions[fachID]; ok {
		copied := *session
		copied.Blocks = append([]model.Block(nil), session.Blocks...)
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListByUsername(_ context.Context, username string) ([]model.Session, error) {
	var result []model.Session
	for _, session := range m.sessions {
		if session.Username == username {
			copied := *session
			copied.Blocks = append([]model.Block(nil), session.Blocks...)
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) DeleteByFachID(_ context.Context, fachID string) (int64, error) {
	if _, ok := m.sessions[fachID]; !ok {
		return 0, nil
	}
	delete(m.sessions, fachID)
	return 1, nil
}

// ── Mock LernplanRepository ──

type mockLernplanRepo struct {
	lernplaene map[string]*model.Lernplan
	saveCalls  int
}

func newMockLernplanRepo() *mockLernplanRepo {
	return &mockLernplanRepo{lernplaene: make(map[string]*model.Lernplan)}
}

func (m *mockLernplanRepo) Save(_ context.Context, lernplan *model.Lernplan) error {
	m.saveCalls++
	stored := *lernplan
	stored.Tage = append([]model.Tag(nil), lernplan.Tage...)
	m.lernplaene[lernplan.FachID] = &stored
	return nil
}

func (m *mockLernplanRepo) GetByFachID(_ context.Context, fachID string) (*model.Lernplan, error) {
	if lernplan, ok := m.lernplaene[fachID]; ok {
		copied := *lernplan
		copied.Tage = append([]model.Tag(nil), lernplan.Tage...)
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLernplanRepo) GetActiveByUsername(_ context.Context, username string) (*model.Lernplan, error) {
	for _, lernplan := range m.lernplaene {
		if lernplan.Username == username && lernplan.IsActive {
			copied := *lernplan
			copied.Tage = append([]model.Tag(nil), lernplan.Tage...)
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLernplanRepo) ListByUsername(_ context.Context, username string) ([]model.Lernplan, error) {
	var result []model.Lernplan
	for _, lernplan := range m.lernplaene {
		if lernplan.Username == username {
			copied := *lernplan
			copied.Tage = append([]model.Tag(nil), lernplan.Tage...)
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockLernplanRepo) DeleteByFachID(_ context.Context, fachID string) (int64, error) {
	if _, ok := m.lernplaene[fachID]; !ok {
		return 0, nil
	}
	delete(m.lernplaene, fachID)
	return 1, nil
}

func (m *mockLernplanRepo) ActivateExclusively(_ context.Context, fachID, username string) (int64, error) {
	target, ok := m.lernplaene[fachID]
	if !ok || target.Username != username {
		// No rows hit by the activation step, nothing is changed.
		return 0, nil
	}
	for _, lernplan := range m.lernplaene {
		if lernplan.Username == username {
			lernplan.IsActive = false
		}
	}
	target.IsActive = true
	return 1, nil
}

// ── Mock ModulGelerntEventRepository ──

type mockModulEventRepo struct {
	events map[string]*model.ModulGelerntEvent
}

func newMockModulEventRepo() *mockModulEventRepo {
	return &mockModulEventRepo{events: make(map[string]*model.ModulGelerntEvent)}
}

func (m *mockModulEventRepo) Save(_ context.Context, event *model.ModulGelerntEvent) error {
	stored := *event
	m.events[event.EventID] = &stored
	return nil
}

func (m *mockModulEventRepo) ListByUsername(_ context.Context, username string) ([]model.ModulGelerntEvent, error) {
	var result []model.ModulGelerntEvent
	for _, event := range m.events {
		if event.Username == username {
			result = append(result, *event)
		}
	}
	return result, nil
}

func (m *mockModulEventRepo) DeleteAllByModulID(_ context.Context, modulID string) (int64, error) {
	var count int64
	for id, event := range m.events {
		if event.ModulID == modulID {
			delete(m.events, id)
			count++
		}
	}
	return count, nil
}

// ── Mock SessionBeendetEventRepository ──

type mockSessionEventRepo struct {
	events map[string]*model.SessionBeendetEvent
}

func newMockSessionEventRepo() *mockSessionEventRepo {
	return &mockSessionEventRepo{events: make(map[string]*model.SessionBeendetEvent)}
}

func (m *mockSessionEventRepo) Save(_ context.Context, event *model.SessionBeendetEvent) error {
	stored := *event
	m.events[event.EventID] = &stored
	return nil
}

func (m *mockSessionEventRepo) ListByUsername(_ context.Context, username string) ([]model.SessionBeendetEvent, error) {
	var result []model.SessionBeendetEvent
	for _, event := range m.events {
		if event.Username == username {
			result = append(result, *event)
		}
	}
	return result, nil
}

func (m *mockSessionEventRepo) DeleteAllBySessionID(_ context.Context, sessionID string) (int64, error) {
	var count int64
	for id, event := range m.events {
		if event.SessionID == sessionID {
			delete(m.events, id)
			count++
		}
	}
	return count, nil
}
