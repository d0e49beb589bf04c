package usecase

import (
	"fmt"
	"time"

	"nakhlestan/internal/domain/model"
)

// سقف امتیاز یک سفارش؛ جلوی سوءاستفاده با یک سفارش بزرگ را می‌گیرد
const MaxPointsPerOrder = 20000

// پنجره دسترسی کلید طلایی
const goldenKeyWindow = 7 * 24 * time.Hour

// ساعت سیستم؛ برای تست قابل تزریق
type Clock interface {
	Now() time.Time
}

// تولید شناسه (UUID)
type IDGenerator interface {
	NewID() string
}

// snapshot کامل حساب کاربر؛ ورودی و خروجی حسابدار.
// ترتیب Timeline و Notifications جدیدترین-اول است.
type UserSnapshot struct {
	User          model.User            `json:"user"`
	PointsHistory []model.PointsEntry   `json:"points_history"`
	Timeline      []model.TimelineEvent `json:"timeline"`
	Notifications []model.Notification  `json:"notifications"`
	UnlockedTools []string              `json:"unlocked_tools"`
	Projects      []model.Project       `json:"projects"`
}

// ورودی حسابدار: سفارش نهایی‌شده با اقلام و سندهایش
type FulfillmentInput struct {
	Order model.Order
	Items []model.OrderItem
	Deeds []model.Deed
}

// خروجی حسابدار؛ همه مقادیری که باید ذخیره شوند
type FulfillmentResult struct {
	PointsEarned  int64                 `json:"points_earned"`
	Entry         *model.PointsEntry    `json:"entry"`
	Events        []model.TimelineEvent `json:"events"`
	Notifications []model.Notification  `json:"notifications"`

	GrantedTools       []string        `json:"granted_tools"`
	GardenerUses       int64           `json:"gardener_uses"`
	GoldenKeyExpiresAt *time.Time      `json:"golden_key_expires_at"`
	Projects           []model.Project `json:"projects"`

	//snapshot جدید کاربر؛ برای checkout مهمان nil
	Updated *UserSnapshot `json:"updated"`
}

// ذخیره در پس‌زمینه؛ نتیجه منتظر نمی‌ماند (fire-and-forget).
// خطای ذخیره توسط صف log می‌شود، نه caller.
type Persister interface {
	SaveOrder(order model.Order)
	SaveUser(userID int64, res FulfillmentResult)
}

// جایزه باز شدن که خرید یک محصول خاص می‌دهد
type UnlockGrant struct {
	GardenerUses  int64
	GoldenKeyDays int
}

// allow-list محصولات جایزه‌دار
func DefaultUnlockTriggers() map[int64]UnlockGrant {
	return map[int64]UnlockGrant{
		//بسته باغبان هوشمند: پنج استفاده
		101: {GardenerUses: 5},
		//کلید طلایی: هفت روز دسترسی
		102: {GoldenKeyDays: 7},
	}
}

// FulfillmentUsecase بعد از پرداخت موفق، اثر سفارش روی حساب کاربر را حساب می‌کند.
// جز ساعت و تولید شناسه، تابع خالص است: ورودی تغییری نمی‌کند و
// همان ورودی همیشه همان نتیجه را می‌دهد.
type FulfillmentUsecase struct {
	clock     Clock
	idGen     IDGenerator
	persister Persister
	triggers  map[int64]UnlockGrant
}

func NewFulfillmentUsecase(clock Clock, idGen IDGenerator, persister Persister, triggers map[int64]UnlockGrant) *FulfillmentUsecase {
	if triggers == nil {
		triggers = DefaultUnlockTriggers()
	}
	return &FulfillmentUsecase{
		clock:     clock,
		idGen:     idGen,
		persister: persister,
		triggers:  triggers,
	}
}

// Fulfill اثر سفارش را محاسبه و ذخیره را به صف پس‌زمینه می‌سپارد.
// snap == nil یعنی checkout مهمان: سفارش ذخیره می‌شود ولی حسابی به‌روز نمی‌شود.
func (u *FulfillmentUsecase) Fulfill(snap *UserSnapshot, in FulfillmentInput) FulfillmentResult {
	now := u.clock.Now()

	res := FulfillmentResult{
		Events:        []model.TimelineEvent{},
		Notifications: []model.Notification{},
		GrantedTools:  []string{},
		Projects:      []model.Project{},
	}

	//۱) جمع امتیاز اقلام با سقف
	var raw int64
	for _, it := range in.Items {
		raw += it.PointsSnapshot * it.Quantity
	}
	res.PointsEarned = raw
	if res.PointsEarned > MaxPointsPerOrder {
		res.PointsEarned = MaxPointsPerOrder
	}

	//۲) به ازای هر سند: یک رویداد کاشت و یک اعلان
	for _, d := range in.Deeds {
		res.Events = append(res.Events, model.TimelineEvent{
			ID:        u.idGen.NewID(),
			UserID:    in.Order.UserID,
			Type:      model.TimelineEventPalmPlanted,
			Title:     fmt.Sprintf("نخلی به نیت «%s» کاشته شد", d.Intention),
			Message:   d.Message,
			DeedID:    d.ID,
			CreatedAt: now,
		})
		res.Notifications = append(res.Notifications, model.Notification{
			ID:        u.idGen.NewID(),
			UserID:    in.Order.UserID,
			Type:      "deed_issued",
			Title:     "سند نخل شما صادر شد",
			Message:   fmt.Sprintf("سند کاشت به نیت «%s» آماده است", d.Intention),
			CreatedAt: now,
		})
	}

	//۳) جایزه‌های باز شدن
	knownTools := map[string]bool{}
	if snap != nil {
		for _, t := range snap.UnlockedTools {
			knownTools[t] = true
		}
	}
	for _, it := range in.Items {
		if g, ok := u.triggers[it.ProductID]; ok {
			if g.GardenerUses > 0 {
				res.GardenerUses += g.GardenerUses * it.Quantity
			}
			if g.GoldenKeyDays > 0 {
				exp := now.Add(time.Duration(g.GoldenKeyDays) * 24 * time.Hour)
				if res.GoldenKeyExpiresAt == nil || exp.After(*res.GoldenKeyExpiresAt) {
					res.GoldenKeyExpiresAt = &exp
				}
			}
		}

		//union؛ ابزار تکراری دوباره اضافه نمی‌شود
		if it.UnlocksFeatureID != "" && !knownTools[it.UnlocksFeatureID] {
			knownTools[it.UnlocksFeatureID] = true
			res.GrantedTools = append(res.GrantedTools, it.UnlocksFeatureID)
		}
	}

	//۴) درخواست پروژه وب
	for _, it := range in.Items {
		if it.ProjectPayload == "" {
			continue
		}
		p := model.Project{
			ID:        u.idGen.NewID(),
			UserID:    in.Order.UserID,
			Title:     it.ProductNameSnapshot,
			Details:   it.ProjectPayload,
			Status:    model.ProjectStatusRequested,
			CreatedAt: now,
			UpdatedAt: now,
		}
		res.Projects = append(res.Projects, p)
		res.Events = append(res.Events, model.TimelineEvent{
			ID:        u.idGen.NewID(),
			UserID:    in.Order.UserID,
			Type:      model.TimelineEventProjectRequested,
			Title:     fmt.Sprintf("درخواست پروژه «%s» ثبت شد", p.Title),
			CreatedAt: now,
		})
	}

	//۵) snapshot جدید کاربر؛ ورودی دست نمی‌خورد
	if snap != nil {
		if res.PointsEarned > 0 {
			res.Entry = &model.PointsEntry{
				UserID:    snap.User.ID,
				Action:    fmt.Sprintf("خرید سفارش %d", in.Order.ID),
				Points:    res.PointsEarned,
				Type:      model.PointsTypeBarkat,
				CreatedAt: now,
			}
		}
		res.Updated = mergeSnapshot(snap, res)
	}

	//۶) ذخیره در پس‌زمینه؛ نتیجه UI قبل از تایید ذخیره به‌روز می‌شود
	u.persister.SaveOrder(in.Order)
	if res.Updated != nil {
		u.persister.SaveUser(snap.User.ID, res)
	}

	return res
}

// ادغام نتیجه با snapshot قبلی؛ رویدادها و اعلان‌ها جلوی فهرست می‌نشینند
func mergeSnapshot(snap *UserSnapshot, res FulfillmentResult) *UserSnapshot {
	next := &UserSnapshot{
		User: snap.User,
	}

	next.User.BarkatPoints += res.PointsEarned
	next.User.AIGardenerUses += res.GardenerUses
	if res.GoldenKeyExpiresAt != nil {
		if next.User.GoldenKeyExpiresAt == nil || res.GoldenKeyExpiresAt.After(*next.User.GoldenKeyExpiresAt) {
			exp := *res.GoldenKeyExpiresAt
			next.User.GoldenKeyExpiresAt = &exp
		}
	}

	next.PointsHistory = make([]model.PointsEntry, 0, len(snap.PointsHistory)+1)
	if res.Entry != nil {
		next.PointsHistory = append(next.PointsHistory, *res.Entry)
	}
	next.PointsHistory = append(next.PointsHistory, snap.PointsHistory...)

	next.Timeline = make([]model.TimelineEvent, 0, len(snap.Timeline)+len(res.Events))
	next.Timeline = append(next.Timeline, res.Events...)
	next.Timeline = append(next.Timeline, snap.Timeline...)

	next.Notifications = make([]model.Notification, 0, len(snap.Notifications)+len(res.Notifications))
	next.Notifications = append(next.Notifications, res.Notifications...)
	next.Notifications = append(next.Notifications, snap.Notifications...)

	next.UnlockedTools = make([]string, 0, len(snap.UnlockedTools)+len(res.GrantedTools))
	next.UnlockedTools = append(next.UnlockedTools, snap.UnlockedTools...)
	next.UnlockedTools = append(next.UnlockedTools, res.GrantedTools...)

	next.Projects = make([]model.Project, 0, len(snap.Projects)+len(res.Projects))
	next.Projects = append(next.Projects, res.Projects...)
	next.Projects = append(next.Projects, snap.Projects...)

	return next
}
