package http

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"

	"headlines/internal/domain"
)

type dashboardBuilder interface {
	BuildDashboard(ctx context.Context, request, cookie map[string]string) (*domain.Dashboard, domain.Preferences, error)
}

// Handler обслуживает домашнюю страницу и служебные эндпоинты.
// Часы инжектируются, чтобы тесты могли зафиксировать срок жизни cookie.
type Handler struct {
	log       *slog.Logger
	builder   dashboardBuilder
	tmpl      *template.Template
	clock     clockwork.Clock
	cookieTTL time.Duration
}

func NewHandler(
	log *slog.Logger,
	builder dashboardBuilder,
	tmpl *template.Template,
	clock clockwork.Clock,
	cookieTTL time.Duration,
) *Handler {
	return &Handler{
		log:       log,
		builder:   builder,
		tmpl:      tmpl,
		clock:     clock,
		cookieTTL: cookieTTL,
	}
}

// home - хендлер домашней страницы (GET и POST).
// Считывает значения настроек из параметров запроса и cookie, передает их
// сборщику страницы и записывает обратно все четыре разрешенных значения
// cookie со сроком жизни 365 дней от момента ответа - даже значение
// по умолчанию пересохраняется, продлевая срок.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/home"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		log.Warn("method not allowed", slog.String("method", r.Method))
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	request := make(map[string]string, len(domain.PrefNames))
	cookie := make(map[string]string, len(domain.PrefNames))
	for _, name := range domain.PrefNames {
		request[name] = r.FormValue(name)
		if c, err := r.Cookie(name); err == nil {
			// Значения cookie хранятся URL-экранированными, чтобы свободный
			// текст вроде "Aguascalientes, MX" переживал транспорт.
			if value, err := url.QueryUnescape(c.Value); err == nil {
				cookie[name] = value
			}
		}
	}

	dash, prefs, err := h.builder.BuildDashboard(r.Context(), request, cookie)
	if err != nil {
		log.Error("Failed to build dashboard", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var body bytes.Buffer
	if err := h.tmpl.Execute(&body, dash); err != nil {
		log.Error("Failed to render template", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	expires := h.clock.Now().Add(h.cookieTTL)
	for _, name := range domain.PrefNames {
		http.SetCookie(w, &http.Cookie{
			Name:    name,
			Value:   url.QueryEscape(prefs[name]),
			Path:    "/",
			Expires: expires,
		})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body.Bytes())
}

// healthCheck - хендлер для проверки состояния сервиса
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Вспомогательные функции для ответов
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
func getRequestID(ctx context.Context) string {
	return "req-" + time.Now().Format("20060102150405")
}
