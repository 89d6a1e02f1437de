package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/venkatesh7569/portfolio/internal/config"
	"github.com/venkatesh7569/portfolio/internal/contact"
	"github.com/venkatesh7569/portfolio/internal/emailjs"
	"github.com/venkatesh7569/portfolio/internal/logger"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if _, err := logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	if cfg.CSRFGenerated {
		log.Warn().Msg("CSRF_KEY not set, using a random key; forms break across restarts")
	}

	sender := emailjs.New(
		emailjs.WithEndpoint(cfg.EmailJS.Endpoint),
		emailjs.WithTimeout(cfg.EmailJS.Timeout),
		emailjs.WithPrivateKey(cfg.EmailJS.PrivateKey),
		emailjs.WithLogger(logger.Component("emailjs")),
	)
	contacts := contact.NewHandler(sender, contact.Account{
		ServiceID:  cfg.EmailJS.ServiceID,
		TemplateID: cfg.EmailJS.TemplateID,
		PublicKey:  cfg.EmailJS.PublicKey,
	}, logger.Component("contact"))

	r := newRouter(cfg.TemplateGlob, contacts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           protect(r, cfg.CSRFKey, cfg.SecureCookies),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("serving portfolio")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server shut down")
}
