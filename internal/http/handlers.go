package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	applog "ledgerview/internal/log"
	"ledgerview/internal/view"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil || s.views == nil {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleIndex mounts a fresh view, which performs the data load, and
// renders the whole page. A failed load still renders the page with the
// error banner.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v := s.views.Mount(r.Context())
	st := v.State()

	b := NewHTMXResponse().Header("Cache-Control", "no-store")
	s.render(r, b, "index.html", v.ID, st).Write(w)
}

// handleFilters applies the posted filter inputs and returns the table.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	params, err := ParseFilterParams(r)
	if errors.Is(err, ErrFilterTooLong) {
		BadRequestError("Filter value is too long").Write(w)
		return
	}
	if err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	var events []view.Event
	if params.HasName {
		events = append(events, view.NameFilterChanged{Value: params.Name})
	}
	if params.HasAmount {
		events = append(events, view.AmountFilterChanged{Value: params.Amount})
	}

	st, err := s.dispatch(r, id, events...)
	if err != nil {
		s.viewError(w, r, id, err)
		return
	}

	applog.FromContext(r.Context()).WithComponent(applog.ComponentView).DebugContext(r.Context(), "Filters applied",
		append(applog.NewFields().WithView(id).WithOperation(applog.OpFilter).
			WithFilters(st.NameFilter, st.AmountFilter).ToSlice(),
			applog.FieldCount, len(st.Filtered))...)

	b := NewHTMXResponse().TriggerFiltersApplied(len(st.Filtered))
	s.render(r, b, "table", id, st).Write(w)
}

// handleSelect records a click on a customer's transaction row and returns
// the table and the chart.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	customerID, err := ParseCustomerParam(r)
	if err != nil {
		BadRequestError("Invalid customer").Write(w)
		return
	}

	st, err := s.dispatch(r, id, view.CustomerSelected{ID: customerID})
	if err != nil {
		s.viewError(w, r, id, err)
		return
	}

	b := NewHTMXResponse()
	if st.SelectedID() == customerID {
		series, _ := st.Chart()
		b.TriggerCustomerSelected(customerID.String(), series.Len())
	}
	s.render(r, b, "results", id, st).Write(w)
}

// handleChartPartial renders the chart section of the current selection.
func (s *Server) handleChartPartial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	v, err := s.views.Get(id)
	if err != nil {
		s.viewError(w, r, id, err)
		return
	}
	s.render(r, NewHTMXResponse(), "chart", id, v.State()).Write(w)
}

// handleChartJSON returns the Chart.js data of the current selection.
func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	v, err := s.views.Get(id)
	if err != nil {
		NewHTMXResponse().Status(http.StatusGone).JSON(map[string]string{"error": "view expired"}).Write(w)
		return
	}
	st := v.State()
	series, ok := st.Chart()
	if !ok {
		NewHTMXResponse().Status(http.StatusNotFound).JSON(map[string]string{"error": "no customer selected"}).Write(w)
		return
	}
	NewHTMXResponse().JSON(struct {
		Customer string    `json:"customer"`
		Name     string    `json:"name"`
		Data     chartData `json:"data"`
	}{
		Customer: st.Selected.ID.String(),
		Name:     st.Selected.Name,
		Data:     newChartData(series),
	}).Write(w)
}

func (s *Server) dispatch(r *http.Request, id string, events ...view.Event) (view.State, error) {
	return s.views.DispatchAll(r.Context(), id, events...)
}

// viewError answers for a view that is unknown or has expired.
func (s *Server) viewError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if !errors.Is(err, view.ErrViewNotFound) {
		s.errLog.LogError(r.Context(), "View event failed", err, applog.ComponentView, applog.OpDispatch,
			applog.NewFields().WithView(id))
		InternalServerError("Something went wrong").Write(w)
		return
	}
	applog.FromContext(r.Context()).WithComponent(applog.ComponentView).InfoContext(r.Context(), "Event for unknown view",
		applog.FieldViewID, id, applog.FieldPath, r.URL.Path)

	var buf bytes.Buffer
	if execErr := s.templates.ExecuteTemplate(&buf, "gone", nil); execErr != nil {
		ErrorResponse(http.StatusGone, "This page has expired. Reload to start again.").Write(w)
		return
	}
	NewHTMXResponse().Status(http.StatusGone).BodyHTML(buf.Bytes()).Write(w)
}

// render executes the named template into b. Execution errors replace the
// response with a 500.
func (s *Server) render(r *http.Request, b *HTMXResponseBuilder, name, viewID string, st view.State) *HTMXResponseBuilder {
	data, err := newPageData(viewID, st)
	if err != nil {
		s.errLog.LogError(r.Context(), "Chart encoding failed", err, applog.ComponentTemplate, applog.OpRender,
			applog.NewFields().WithView(viewID))
		return InternalServerError("Could not render page")
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.errLog.LogError(r.Context(), "Template execution failed", err, applog.ComponentTemplate, applog.OpRender,
			applog.NewFields().WithView(viewID))
		return InternalServerError("Could not render page")
	}
	return b.BodyHTML(buf.Bytes())
}
