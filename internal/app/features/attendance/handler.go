// internal/app/features/attendance/handler.go
package attendance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sort"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	"github.com/parivartan/platform/internal/app/policy/attendancepolicy"
	attendancestore "github.com/parivartan/platform/internal/app/store/attendance"
	profilestore "github.com/parivartan/platform/internal/app/store/profiles"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/roles"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Handler serves the attendance register.
type Handler struct {
	Log      *zap.Logger
	Sessions *attendancestore.Store
	Profiles *profilestore.Store
}

func NewHandler(sessions *attendancestore.Store, profiles *profilestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Sessions: sessions, Profiles: profiles}
}

// ServeGet handles GET /api/attendance/{date}. A day with no sheet yet
// returns an empty unsubmitted session so the client can start marking.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sess, err := h.Sessions.GetByDate(ctx, date)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteJSON(w, http.StatusOK, models.AttendanceSession{
			Date:    date,
			Entries: []models.AttendanceEntry{},
		})
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "attendance.get", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, sess)
}

// ServeList handles GET /api/attendance?from=...&to=...
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sessions, err := h.Sessions.ListRange(ctx, query.Get(r, "from"), query.Get(r, "to"))
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "attendance.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, sessions)
}

// ServeRoster handles GET /api/attendance/roster, the member list the
// sheet is marked against.
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Profiles.ListByRoles(ctx, roles.Member, roles.Admin)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "attendance.roster", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, members)
}

// ServeMark handles PUT /api/attendance/{date}: write the day's entries.
// A submitted sheet only takes edits from SUPER_ADMIN.
func (h *Handler) ServeMark(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	date := chi.URLParam(r, "date")

	var req struct {
		VillageName string                   `json:"village_name"`
		Entries     []models.AttendanceEntry `json:"entries"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	for _, e := range req.Entries {
		if e.Status != models.AttendancePresent && e.Status != models.AttendanceAbsent {
			apierrors.WriteBadRequest(w, fmt.Sprintf("invalid status %q", e.Status))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	submitted := false
	if existing, err := h.Sessions.GetByDate(ctx, date); err == nil {
		submitted = existing.Submitted
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteServerError(w, h.Log, "attendance.mark.get", err)
		return
	}

	if !attendancepolicy.CanEdit(caller.Role, submitted) {
		if submitted {
			apierrors.WriteForbidden(w, "this sheet is submitted and locked")
		} else {
			apierrors.WriteForbidden(w, "marking attendance needs an admin")
		}
		return
	}

	saved, err := h.Sessions.Upsert(ctx, models.AttendanceSession{
		Date:        date,
		VillageName: req.VillageName,
		Entries:     req.Entries,
	}, caller.UserID)
	if errors.Is(err, attendancestore.ErrBadDate) {
		apierrors.WriteBadRequest(w, err.Error())
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "attendance.mark", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, saved)
}

// ServeSubmit handles POST /api/attendance/{date}/submit.
// Body: {"submitted": true|false}. Locking an open sheet is an admin
// action; touching a locked sheet (including reopening) is SUPER_ADMIN
// only.
func (h *Handler) ServeSubmit(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	date := chi.URLParam(r, "date")

	var req struct {
		Submitted bool `json:"submitted"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Sessions.GetByDate(ctx, date)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "no attendance sheet for this date")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "attendance.submit.get", err)
		return
	}

	if !attendancepolicy.CanEdit(caller.Role, existing.Submitted) {
		apierrors.WriteForbidden(w, "you cannot change this sheet's status")
		return
	}

	if err := h.Sessions.SetSubmitted(ctx, date, req.Submitted); err != nil {
		apierrors.WriteServerError(w, h.Log, "attendance.submit", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{"date": date, "submitted": req.Submitted})
}

// ServeAwardBadges handles POST /api/attendance/badges/{month}. The top
// three presence counts for the month earn gold, silver, and bronze.
func (h *Handler) ServeAwardBadges(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	if !monthRe.MatchString(month) {
		apierrors.WriteBadRequest(w, "month must be YYYY-MM")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	counts, err := h.Sessions.PresenceCounts(ctx, month+"-01", month+"-31")
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "attendance.badges.counts", err)
		return
	}
	if len(counts) == 0 {
		apierrors.WriteJSON(w, http.StatusOK, map[string]any{"awarded": 0})
		return
	}

	type ranked struct {
		userID primitive.ObjectID
		count  int
	}
	order := make([]ranked, 0, len(counts))
	for id, n := range counts {
		order = append(order, ranked{userID: id, count: n})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].userID.Hex() < order[j].userID.Hex()
	})

	tiers := []string{"gold", "silver", "bronze"}
	awarded := 0
	for i, rk := range order {
		if i >= len(tiers) {
			break
		}
		badge := models.Badge{
			Type:  tiers[i],
			Month: month,
			Label: fmt.Sprintf("%s attendance %s", tiers[i], month),
		}
		if err := h.Profiles.AwardBadge(ctx, rk.userID, badge); err != nil {
			h.Log.Warn("failed to award badge",
				zap.String("user_id", rk.userID.Hex()), zap.Error(err))
			continue
		}
		awarded++
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{"awarded": awarded})
}
