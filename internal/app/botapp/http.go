package botapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// runWebhook registers the webhook with Telegram and serves updates over
// HTTP until the context is cancelled.
func (a *App) runWebhook(ctx context.Context) error {
	url := strings.TrimRight(a.cfg.Webhook.Domain, "/") + a.cfg.Webhook.Path
	if err := a.tg.SetWebhook(url, a.cfg.Webhook.Secret); err != nil {
		return err
	}
	a.logger.Info("webhook registered", zap.String("url", url))

	server := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      a.webhookHandler(),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (a *App) webhookHandler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Post(a.cfg.Webhook.Path, func(w http.ResponseWriter, r *http.Request) {
		if a.cfg.Webhook.Secret != "" &&
			r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != a.cfg.Webhook.Secret {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			a.logger.Warn("decode webhook update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		a.tg.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	})

	return router
}
