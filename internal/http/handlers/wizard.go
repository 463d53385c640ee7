package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/supplychain-leads/internal/leads"
	"github.com/wolfman30/supplychain-leads/internal/notify"
	"github.com/wolfman30/supplychain-leads/internal/observability/metrics"
	"github.com/wolfman30/supplychain-leads/internal/session"
	"github.com/wolfman30/supplychain-leads/internal/site"
	"github.com/wolfman30/supplychain-leads/internal/wizard"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

const defaultCookieName = "lead_wizard"

// WizardConfig controls the session cookie.
type WizardConfig struct {
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
}

// WizardHandler drives one lead wizard per browser session. The HTML routes
// follow Post/Redirect/Get; the /api routes answer with JSON.
type WizardHandler struct {
	sessions session.Store
	sink     wizard.Sink
	renderer *site.Renderer
	logger   *logging.Logger
	metrics  *metrics.WizardMetrics
	cfg      WizardConfig
	now      func() time.Time
}

func NewWizardHandler(store session.Store, sink wizard.Sink, renderer *site.Renderer, m *metrics.WizardMetrics, cfg WizardConfig, logger *logging.Logger) *WizardHandler {
	if store == nil || sink == nil || renderer == nil {
		panic("handlers: wizard handler requires session store, sink and renderer")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &WizardHandler{
		sessions: store,
		sink:     sink,
		renderer: renderer,
		logger:   logger,
		metrics:  m,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WizardFields are the optional field updates sent with an action.
type WizardFields struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Interest     *string `json:"interest,omitempty"`
	OtherDetails *string `json:"otherDetails,omitempty"`
}

// WizardResponse is the JSON view of a session's wizard.
type WizardResponse struct {
	State      wizard.State       `json:"state"`
	Step       int                `json:"step"`
	TotalSteps int                `json:"totalSteps"`
	Draft      wizard.Draft       `json:"draft"`
	Errors     wizard.FieldErrors `json:"errors,omitempty"`
	CanGoBack  bool               `json:"canGoBack"`
	CanAdvance bool               `json:"canAdvance"`
	Toasts     []notify.Toast     `json:"toasts,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Page renders the landing page with the session's wizard. Pending toasts are
// shown once and then cleared.
func (h *WizardHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := h.sessionID(w, r)

	data, err := h.load(ctx, id)
	if err != nil {
		h.logger.Error("failed to load wizard session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	wiz := h.restore(data, notify.NewFlash())

	toasts := data.Toasts
	if len(toasts) > 0 {
		h.clearToasts(ctx, id)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Render(w, site.NewWizardView(wiz.Snapshot()), toasts); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}

// clearToasts drops shown toasts. A busy session keeps them for the next render.
func (h *WizardHandler) clearToasts(ctx context.Context, id string) {
	unlock, err := h.sessions.Lock(ctx, id)
	if err != nil {
		return
	}
	defer unlock()

	data, err := h.load(ctx, id)
	if err != nil {
		h.logger.Warn("failed to clear toasts", "error", err)
		return
	}
	data.Toasts = nil
	if err := h.save(ctx, id, data); err != nil {
		h.logger.Warn("failed to clear toasts", "error", err)
	}
}

// Next handles the HTML form post of the current step.
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	fields := formFields(r)
	h.htmlAction(w, r, func(ctx context.Context, wiz *wizard.Wizard) error {
		if err := applyFields(wiz, fields); err != nil {
			return err
		}
		return wiz.Next(ctx)
	})
}

// Back handles the HTML back button.
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.htmlAction(w, r, func(_ context.Context, wiz *wizard.Wizard) error {
		return wiz.Back()
	})
}

// APIState returns the session's wizard as JSON.
func (h *WizardHandler) APIState(w http.ResponseWriter, r *http.Request) {
	id := h.sessionID(w, r)
	data, err := h.load(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load wizard session", "error", err)
		writeJSON(w, http.StatusInternalServerError, WizardResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, newWizardResponse(h.restore(data, notify.NewFlash()), nil, nil))
}

// APINext applies the JSON field updates and fires Next.
func (h *WizardHandler) APINext(w http.ResponseWriter, r *http.Request) {
	var fields WizardFields
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeJSON(w, http.StatusBadRequest, WizardResponse{Error: "invalid request body"})
			return
		}
	}
	h.apiAction(w, r, func(ctx context.Context, wiz *wizard.Wizard) error {
		if err := applyFields(wiz, fields); err != nil {
			return err
		}
		return wiz.Next(ctx)
	})
}

// APIBack fires Back.
func (h *WizardHandler) APIBack(w http.ResponseWriter, r *http.Request) {
	h.apiAction(w, r, func(_ context.Context, wiz *wizard.Wizard) error {
		return wiz.Back()
	})
}

type wizardAction func(ctx context.Context, wiz *wizard.Wizard) error

func (h *WizardHandler) htmlAction(w http.ResponseWriter, r *http.Request, action wizardAction) {
	id := h.sessionID(w, r)
	_, _, err := h.run(r.Context(), id, true, action)
	if err != nil && isInternal(err) {
		h.logger.Error("wizard action failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/#"+site.GetStartedAnchor, http.StatusSeeOther)
}

func (h *WizardHandler) apiAction(w http.ResponseWriter, r *http.Request, action wizardAction) {
	id := h.sessionID(w, r)
	wiz, toasts, err := h.run(r.Context(), id, false, action)
	if err != nil && isInternal(err) {
		h.logger.Error("wizard action failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, WizardResponse{Error: "internal error"})
		return
	}
	if wiz == nil {
		writeJSON(w, statusFor(err), WizardResponse{Error: err.Error()})
		return
	}
	writeJSON(w, statusFor(err), newWizardResponse(wiz, toasts, err))
}

// run performs one wizard event under the session lock and persists the
// result. Toasts either stay in the session for the next page render or are
// returned to the caller.
func (h *WizardHandler) run(ctx context.Context, id string, keepToasts bool, action wizardAction) (*wizard.Wizard, []notify.Toast, error) {
	unlock, err := h.sessions.Lock(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrLocked) {
			h.metrics.ObserveBlocked("request", "session_locked")
			return nil, nil, wizard.ErrSubmitInFlight
		}
		return nil, nil, fmt.Errorf("handlers: lock session: %w", err)
	}
	defer unlock()

	data, err := h.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var carried []notify.Toast
	if keepToasts {
		carried = data.Toasts
	}
	flash := notify.NewFlash(carried...)

	// The in-flight state is persisted before the sink is called so that a
	// concurrent request on this session sees StateSubmitting.
	persistSubmitting := func(ctx context.Context, snap wizard.Snapshot) error {
		return h.save(ctx, id, &session.Data{Wizard: snap, Toasts: carried})
	}
	wiz := h.restore(data, flash, wizard.WithSubmittingHook(persistSubmitting))

	actionErr := action(ctx, wiz)

	data.Wizard = wiz.Snapshot()
	var toasts []notify.Toast
	if keepToasts {
		data.Toasts = flash.Pending()
	} else {
		data.Toasts = nil
		toasts = flash.Drain()
	}
	if err := h.save(ctx, id, data); err != nil {
		return nil, nil, err
	}
	return wiz, toasts, actionErr
}

func (h *WizardHandler) restore(data *session.Data, flash *notify.Flash, extra ...wizard.Option) *wizard.Wizard {
	opts := append([]wizard.Option{
		wizard.WithLogger(h.logger),
		wizard.WithMetrics(h.metrics),
		wizard.WithClock(h.now),
	}, extra...)

	wiz, err := wizard.Restore(data.Wizard, h.sink, flash, opts...)
	if err != nil {
		h.logger.Warn("discarding unreadable wizard snapshot", "error", err, "state", data.Wizard.State)
		return wizard.New(h.sink, flash, opts...)
	}
	return wiz
}

func (h *WizardHandler) load(ctx context.Context, id string) (*session.Data, error) {
	data, err := h.sessions.Load(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return &session.Data{Wizard: wizard.Snapshot{State: wizard.StateStep1}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("handlers: load session: %w", err)
	}
	return data, nil
}

func (h *WizardHandler) save(ctx context.Context, id string, data *session.Data) error {
	data.UpdatedAt = h.now().UTC()
	if err := h.sessions.Save(ctx, id, data); err != nil {
		return fmt.Errorf("handlers: save session: %w", err)
	}
	return nil
}

// sessionID returns the cookie's session id, issuing a new one when the cookie
// is missing or malformed.
func (h *WizardHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.cfg.CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	// Later reads in this request must see the same id.
	r.AddCookie(&http.Cookie{Name: h.cfg.CookieName, Value: id})
	return id
}

func formFields(r *http.Request) WizardFields {
	var f WizardFields
	if v, ok := r.PostForm["name"]; ok && len(v) > 0 {
		f.Name = &v[0]
	}
	if v, ok := r.PostForm["email"]; ok && len(v) > 0 {
		f.Email = &v[0]
	}
	if v, ok := r.PostForm["interest"]; ok && len(v) > 0 {
		f.Interest = &v[0]
	}
	return f
}

func applyFields(wiz *wizard.Wizard, f WizardFields) error {
	if f.Name != nil {
		if err := wiz.SetName(*f.Name); err != nil {
			return err
		}
	}
	if f.Email != nil {
		if err := wiz.SetEmail(*f.Email); err != nil {
			return err
		}
	}
	if f.Interest != nil {
		if err := wiz.SetInterest(*f.Interest); err != nil {
			return err
		}
	}
	if f.OtherDetails != nil {
		if err := wiz.SetOtherDetails(*f.OtherDetails); err != nil {
			return err
		}
	}
	return nil
}

func newWizardResponse(wiz *wizard.Wizard, toasts []notify.Toast, err error) WizardResponse {
	snap := wiz.Snapshot()
	resp := WizardResponse{
		State:      snap.State,
		Step:       wiz.StepNumber(),
		TotalSteps: wiz.TotalSteps(),
		Draft:      snap.Draft,
		Errors:     snap.Errors,
		CanGoBack:  wiz.CanGoBack(),
		CanAdvance: wiz.CanAdvance(),
		Toasts:     toasts,
	}
	var verr *wizard.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		resp.Error = verr.Message
	case errors.Is(err, wizard.ErrSubmitFailed):
		resp.Error = wizard.MsgSubmitFailure
	default:
		resp.Error = err.Error()
	}
	return resp
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, wizard.ErrValidation), leads.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrSubmitInFlight),
		errors.Is(err, wizard.ErrSubmitted),
		errors.Is(err, wizard.ErrBackDisabled):
		return http.StatusConflict
	case errors.Is(err, wizard.ErrSubmitFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// isInternal reports errors that are not an expected wizard outcome.
func isInternal(err error) bool {
	return statusFor(err) == http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
