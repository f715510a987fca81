package api

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"rentnest/server/internal/auth"
	"rentnest/server/internal/database"
	"rentnest/server/internal/geocoding"
	"rentnest/server/internal/queue"
	"rentnest/server/internal/storage"
)

type Handler struct {
	db         *database.Database
	logger     *logrus.Logger
	auth       *auth.Service
	store      *storage.Store
	geocoder   *geocoding.Geocoder
	events     *queue.EventQueue
	cities     []string
	sessionTTL time.Duration
}

func NewHandler(db *database.Database, logger *logrus.Logger, authService *auth.Service, store *storage.Store, geocoder *geocoding.Geocoder, events *queue.EventQueue, cities []string, sessionTTL time.Duration) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:         db,
		logger:     logger,
		auth:       authService,
		store:      store,
		geocoder:   geocoder,
		events:     events,
		cities:     cities,
		sessionTTL: sessionTTL,
	}
}

// publishEvent pushes a notification event without letting queue pressure
// affect the request that produced it.
func (h *Handler) publishEvent(event queue.Event) {
	if h.events == nil {
		return
	}
	if err := h.events.Push(event); err != nil {
		h.logger.WithError(err).Warn("Failed to enqueue notification event")
	}
}
