package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ovenmade/bakehouse-backend/api/responses"
	"github.com/ovenmade/bakehouse-backend/internal/analytics"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
	"github.com/ovenmade/bakehouse-backend/pkg/logger"
)

const defaultDashboardWindow = 30 * 24 * time.Hour

// AdminAnalyticsDashboard returns sales KPIs for the requested window.
// Without query parameters it covers the trailing 30 days.
func AdminAnalyticsDashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		rng, err := parseDashboardRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Dashboard(r.Context(), rng)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func parseDashboardRange(r *http.Request) (analytics.DateRange, error) {
	now := time.Now().UTC()
	rng := analytics.DateRange{Start: now.Add(-defaultDashboardWindow), End: now}

	if raw := strings.TrimSpace(r.URL.Query().Get("start")); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return analytics.DateRange{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "start must be YYYY-MM-DD")
		}
		rng.Start = start
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("end")); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return analytics.DateRange{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "end must be YYYY-MM-DD")
		}
		// End is exclusive; include the named day in full.
		rng.End = end.Add(24 * time.Hour)
	}
	return rng, nil
}
