package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/query"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/repository"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
)

type mockNotificationRepo struct {
	mu sync.Mutex

	all      []models.NotificationRecord
	inactive []models.NotificationRecord
	byID     map[string]models.NotificationRecord

	created  []repository.NotificationPayload
	updated  map[string]repository.NotificationPayload
	deleted  []string
	restored []string
	read     []string
	resent   []string

	createErr error
	failIDs   map[string]error

	massSent []repository.MassSendPayload
}

func (m *mockNotificationRepo) ListAll(ctx context.Context) ([]models.NotificationRecord, error) {
	return m.all, nil
}

func (m *mockNotificationRepo) ListInactive(ctx context.Context) ([]models.NotificationRecord, error) {
	return m.inactive, nil
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]models.NotificationRecord, error) {
	out := make([]models.NotificationRecord, 0, len(m.all))
	for _, n := range m.all {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) ListByType(ctx context.Context, t models.NotificationType) ([]models.NotificationRecord, error) {
	out := make([]models.NotificationRecord, 0, len(m.all))
	for _, n := range m.all {
		if n.NotificationType == t {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) ListByStatus(ctx context.Context, s models.NotificationStatus) ([]models.NotificationRecord, error) {
	out := make([]models.NotificationRecord, 0, len(m.all))
	for _, n := range m.all {
		if n.Status == s {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) ListUnread(ctx context.Context, recipientID string) ([]models.NotificationRecord, error) {
	out := make([]models.NotificationRecord, 0, len(m.all))
	for _, n := range m.all {
		if n.RecipientID == recipientID && n.Status != models.NotificationStatusRead {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id string) (*models.NotificationRecord, error) {
	if record, ok := m.byID[id]; ok {
		return &record, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "notification "+id+" not found")
}

func (m *mockNotificationRepo) Create(ctx context.Context, payload repository.NotificationPayload) (*models.NotificationRecord, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, payload)
	return &models.NotificationRecord{
		ID:               "created",
		RecipientID:      payload.RecipientID,
		RecipientType:    payload.RecipientType,
		NotificationType: payload.NotificationType,
		Channel:          payload.Channel,
		Message:          payload.Message,
		Status:           models.NotificationStatusPending,
	}, nil
}

func (m *mockNotificationRepo) Update(ctx context.Context, id string, payload repository.NotificationPayload) (*models.NotificationRecord, error) {
	if m.updated == nil {
		m.updated = make(map[string]repository.NotificationPayload)
	}
	m.updated[id] = payload
	return &models.NotificationRecord{ID: id, RecipientID: payload.RecipientID, Message: payload.Message}, nil
}

func (m *mockNotificationRepo) SoftDelete(ctx context.Context, id string) (*models.NotificationRecord, error) {
	m.deleted = append(m.deleted, id)
	return &models.NotificationRecord{ID: id, Status: models.NotificationStatusDeleted}, nil
}

func (m *mockNotificationRepo) Restore(ctx context.Context, id string) (*models.NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failIDs[id]; ok {
		return nil, err
	}
	m.restored = append(m.restored, id)
	return &models.NotificationRecord{ID: id, Status: models.NotificationStatusSent}, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) (*models.NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failIDs[id]; ok {
		return nil, err
	}
	m.read = append(m.read, id)
	return &models.NotificationRecord{ID: id, Status: models.NotificationStatusRead}, nil
}

func (m *mockNotificationRepo) Resend(ctx context.Context, id string) (*models.NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failIDs[id]; ok {
		return nil, err
	}
	m.resent = append(m.resent, id)
	return &models.NotificationRecord{ID: id, Status: models.NotificationStatusSent}, nil
}

func (m *mockNotificationRepo) MassSend(ctx context.Context, payload repository.MassSendPayload) ([]models.NotificationRecord, error) {
	m.massSent = append(m.massSent, payload)
	return []models.NotificationRecord{{ID: "n1"}, {ID: "n2"}}, nil
}

func newNotificationService(repo *mockNotificationRepo, dir *mockDirectory, cacheRepo *mockCacheRepo) *NotificationService {
	var cache *CacheService
	if cacheRepo != nil {
		cache = NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	}
	return NewNotificationService(repo, dir, cache, nil, nil, 0, nil)
}

func boolPtr(v bool) *bool { return &v }

func sampleNotificationSet() []models.NotificationRecord {
	return []models.NotificationRecord{
		{ID: "aaaa1111", RecipientID: "s1", RecipientType: models.RecipientStudent, NotificationType: models.NotificationGradePublished, Channel: models.ChannelEmail, Message: "nota publicada", Status: models.NotificationStatusSent},
		{ID: "bbbb2222", RecipientID: "t1", RecipientType: models.RecipientTeacher, NotificationType: models.NotificationMeetingReminder, Channel: models.ChannelPush, Message: "reunión", Status: models.NotificationStatusPending},
		{ID: "cccc3333", RecipientID: "s1", RecipientType: models.RecipientStudent, NotificationType: models.NotificationGeneralNotice, Channel: models.ChannelSMS, Message: "aviso", Status: models.NotificationStatusSent, IsDeleted: boolPtr(true)},
	}
}

func TestNotificationListActiveScopeExcludesResolvedDeleted(t *testing.T) {
	repo := &mockNotificationRepo{all: sampleNotificationSet()}
	dir := &mockDirectory{
		students: []models.Student{{ID: "s1", FirstName: "Ana", LastName: "Soto"}},
		teachers: []models.Teacher{{ID: "t1", FirstName: "Luis", LastName: "Rojas"}},
	}
	svc := newNotificationService(repo, dir, nil)

	view, err := svc.List(context.Background(), NotificationQuery{Scope: ScopeActive})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Total)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Ana Soto", view.Rows[0].RecipientName)
	assert.Equal(t, "AAAA-1111", view.Rows[0].ShortID)
	assert.Equal(t, "Luis Rojas", view.Rows[1].RecipientName)
	assert.False(t, view.Rows[0].IsDeleted)
}

func TestNotificationListAnnotatesStatusPresentation(t *testing.T) {
	repo := &mockNotificationRepo{all: sampleNotificationSet()}
	svc := newNotificationService(repo, &mockDirectory{}, nil)

	view, err := svc.List(context.Background(), NotificationQuery{Scope: ScopeActive})
	require.NoError(t, err)
	sent := view.Rows[0]
	assert.Equal(t, "Enviada", sent.StatusLabel)
	assert.Equal(t, models.BadgeSuccess, sent.StatusColor)
	assert.Equal(t, "fa-check", sent.StatusIcon)

	pending := view.Rows[1]
	assert.Equal(t, models.BadgeWarning, pending.StatusColor)
}

func TestNotificationListStatsPrecedeFacets(t *testing.T) {
	repo := &mockNotificationRepo{all: sampleNotificationSet()}
	svc := newNotificationService(repo, &mockDirectory{}, nil)

	view, err := svc.List(context.Background(), NotificationQuery{
		Scope:  ScopeActive,
		Facets: query.NotificationFacets{Status: "PENDING"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Shown)
	assert.Equal(t, 2, view.Stats.Total)
	assert.Equal(t, 1, view.Stats.ByStatus["SENT"])
	assert.Equal(t, 1, view.Stats.ByStatus["PENDING"])
}

func TestNotificationScopedReads(t *testing.T) {
	repo := &mockNotificationRepo{all: sampleNotificationSet()}
	svc := newNotificationService(repo, &mockDirectory{}, nil)

	byRecipient, err := svc.ListByRecipient(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, byRecipient, 2)

	byType, err := svc.ListByType(context.Background(), models.NotificationMeetingReminder)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "bbbb2222", byType[0].ID)

	byStatus, err := svc.ListByStatus(context.Background(), models.NotificationStatusPending)
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)

	unread, err := svc.ListUnread(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, unread, 2)
}

func TestNotificationCreateValidation(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := newNotificationService(repo, &mockDirectory{}, nil)

	_, err := svc.Create(context.Background(), CreateNotificationRequest{
		RecipientID:      "s1",
		RecipientType:    "PARENT",
		NotificationType: models.NotificationGeneralNotice,
		Channel:          models.ChannelEmail,
		Message:          "hola",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
	assert.Empty(t, repo.created)
}

func TestNotificationUpdateKeepsRecipient(t *testing.T) {
	repo := &mockNotificationRepo{byID: map[string]models.NotificationRecord{
		"n1": {ID: "n1", RecipientID: "s1", RecipientType: models.RecipientStudent},
	}}
	svc := newNotificationService(repo, &mockDirectory{}, nil)

	_, err := svc.Update(context.Background(), "n1", UpdateNotificationRequest{
		NotificationType: models.NotificationGradeUpdated,
		Channel:          models.ChannelSMS,
		Message:          "actualizada",
	})
	require.NoError(t, err)
	payload := repo.updated["n1"]
	assert.Equal(t, "s1", payload.RecipientID)
	assert.Equal(t, models.RecipientStudent, payload.RecipientType)
	assert.Equal(t, "actualizada", payload.Message)
}

func TestNotificationMutationsInvalidateCache(t *testing.T) {
	repo := &mockNotificationRepo{}
	cacheRepo := &mockCacheRepo{}
	svc := newNotificationService(repo, &mockDirectory{}, cacheRepo)

	_, err := svc.Delete(context.Background(), "n1")
	require.NoError(t, err)
	_, err = svc.MarkRead(context.Background(), "n1")
	require.NoError(t, err)
	_, err = svc.Resend(context.Background(), "n1")
	require.NoError(t, err)

	assert.Equal(t, []string{"notifications:*", "notifications:*", "notifications:*"}, cacheRepo.invalidated)
}

func TestNotificationMarkManyReadPartialFailure(t *testing.T) {
	repo := &mockNotificationRepo{failIDs: map[string]error{
		"id2": errors.New("remote unavailable"),
	}}
	cacheRepo := &mockCacheRepo{}
	svc := newNotificationService(repo, &mockDirectory{}, cacheRepo)

	result := svc.MarkManyRead(context.Background(), []string{"id1", "id2", "id3"})

	assert.Equal(t, []string{"id1", "id3"}, result.Succeeded)
	assert.Contains(t, result.FailedMessages(), "id2")
	assert.False(t, result.AllSucceeded())
	// Partial success still refreshes the snapshot.
	assert.Equal(t, []string{"notifications:*"}, cacheRepo.invalidated)
}

func TestNotificationRestoreManyAllFailSkipsInvalidation(t *testing.T) {
	repo := &mockNotificationRepo{failIDs: map[string]error{
		"id1": errors.New("boom"),
		"id2": errors.New("boom"),
	}}
	cacheRepo := &mockCacheRepo{}
	svc := newNotificationService(repo, &mockDirectory{}, cacheRepo)

	result := svc.RestoreMany(context.Background(), []string{"id1", "id2"})
	assert.Empty(t, result.Succeeded)
	assert.Empty(t, cacheRepo.invalidated)
}

func TestNotificationCreateBulkCollectsPerPositionFailures(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := newNotificationService(repo, &mockDirectory{}, nil)

	valid := CreateNotificationRequest{
		RecipientID:      "s1",
		RecipientType:    models.RecipientStudent,
		NotificationType: models.NotificationGeneralNotice,
		Channel:          models.ChannelEmail,
		Message:          "hola",
	}
	invalid := valid
	invalid.Message = ""

	result := svc.CreateBulk(context.Background(), []CreateNotificationRequest{valid, invalid, valid})
	assert.Len(t, result.Created, 2)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed, 1)
}

func TestNotificationMassSend(t *testing.T) {
	repo := &mockNotificationRepo{}
	cacheRepo := &mockCacheRepo{}
	svc := newNotificationService(repo, &mockDirectory{}, cacheRepo)

	records, err := svc.MassSend(context.Background(), MassSendRequest{
		RecipientType:    models.RecipientStudent,
		NotificationType: models.NotificationGeneralNotice,
		Channel:          models.ChannelEmail,
		Message:          "aviso general",
	})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	require.Len(t, repo.massSent, 1)
	assert.Equal(t, models.RecipientStudent, repo.massSent[0].RecipientType)
	assert.Equal(t, []string{"notifications:*"}, cacheRepo.invalidated)
}

func TestNotificationMassSendValidation(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := newNotificationService(repo, &mockDirectory{}, nil)

	_, err := svc.MassSend(context.Background(), MassSendRequest{
		RecipientType: models.RecipientStudent,
		Channel:       models.ChannelEmail,
	})
	require.Error(t, err)
	assert.Empty(t, repo.massSent)
}

func TestNotificationExportCSV(t *testing.T) {
	repo := &mockNotificationRepo{all: sampleNotificationSet()}
	dir := &mockDirectory{students: []models.Student{{ID: "s1", FirstName: "Ana", LastName: "Soto"}}}
	svc := newNotificationService(repo, dir, nil)

	result, err := svc.Export(context.Background(), NotificationQuery{Scope: ScopeActive}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)

	content := string(result.Payload)
	assert.Contains(t, content, "Destinatario")
	assert.Contains(t, content, "AAAA-1111")
	assert.Contains(t, content, "Ana Soto")
}
