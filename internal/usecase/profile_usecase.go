package usecase

import (
	"context"
	"net/http"
	"time"

	"nakhlestan/internal/domain/model"
	repo "nakhlestan/internal/repository"
)

type ProfileUsecase struct {
	users         repo.UserRepository
	ledger        repo.LedgerRepository
	timeline      repo.TimelineRepository
	notifications repo.NotificationRepository
	projects      repo.ProjectRepository
	deeds         repo.DeedRepository
	clock         Clock
}

func NewProfileUsecase(
	users repo.UserRepository,
	ledger repo.LedgerRepository,
	timeline repo.TimelineRepository,
	notifications repo.NotificationRepository,
	projects repo.ProjectRepository,
	deeds repo.DeedRepository,
	clock Clock,
) *ProfileUsecase {
	return &ProfileUsecase{
		users:         users,
		ledger:        ledger,
		timeline:      timeline,
		notifications: notifications,
		projects:      projects,
		deeds:         deeds,
		clock:         clock,
	}
}

type ProfileOutput struct {
	ID              int64    `json:"id"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	BarkatPoints    int64    `json:"barkat_points"`
	ManaPoints      int64    `json:"mana_points"`
	AIGardenerUses  int64    `json:"ai_gardener_uses"`
	GoldenKeyActive bool     `json:"golden_key_active"`
	UnlockedTools   []string `json:"unlocked_tools"`
}

func (u *ProfileUsecase) GetProfile(ctx context.Context, userID int64) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	tools, err := u.users.ListTools(ctx, userID)
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//کلید طلایی فقط تا وقتی منقضی نشده فعال است
	goldenKey := user.GoldenKeyExpiresAt != nil && user.GoldenKeyExpiresAt.After(u.clock.Now())

	return ProfileOutput{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		BarkatPoints:    user.BarkatPoints,
		ManaPoints:      user.ManaPoints,
		AIGardenerUses:  user.AIGardenerUses,
		GoldenKeyActive: goldenKey,
		UnlockedTools:   tools,
	}, nil
}

func (u *ProfileUsecase) ListTimeline(ctx context.Context, userID int64, limit int) ([]model.TimelineEvent, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	events, err := u.timeline.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return events, nil
}

func (u *ProfileUsecase) ListPointsHistory(ctx context.Context, userID int64, limit int) ([]model.PointsEntry, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	entries, err := u.ledger.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return entries, nil
}

type NotificationOutput struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *ProfileUsecase) ListNotifications(ctx context.Context, userID int64, limit int) ([]NotificationOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	ns, err := u.notifications.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]NotificationOutput, 0, len(ns))
	for _, n := range ns {
		outs = append(outs, NotificationOutput{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.ReadAt != nil,
			CreatedAt: n.CreatedAt,
		})
	}
	return outs, nil
}

func (u *ProfileUsecase) MarkNotificationRead(ctx context.Context, userID int64, notificationID string) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if notificationID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.notifications.MarkRead(ctx, userID, notificationID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProfileUsecase) ListMyDeeds(ctx context.Context, userID int64) ([]model.Deed, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	deeds, err := u.deeds.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return deeds, nil
}

func (u *ProfileUsecase) ListMyProjects(ctx context.Context, userID int64) ([]model.Project, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	ps, err := u.projects.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ps, nil
}
