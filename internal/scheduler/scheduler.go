package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rentnest/server/internal/database"
)

// expiryWindow is how far ahead the scanner looks when logging upcoming
// lease expirations.
const expiryWindow = 30 * 24 * time.Hour

// Scheduler periodically expires overdue leases and reports leases
// approaching their end date.
type Scheduler struct {
	db       *database.Database
	logger   *logrus.Logger
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential scan execution
}

func NewScheduler(db *database.Database, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		db:       db,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scan loop. The first scan runs immediately.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.scan()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.scan()
		}
	}
}

// scan expires overdue leases and logs upcoming expirations.
func (s *Scheduler) scan() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()

	expired, err := s.db.ExpireOverdueLeases(ctx, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to expire overdue leases")
	} else if expired > 0 {
		s.logger.WithField("count", expired).Info("Marked overdue leases as expired")
	}

	upcoming, err := s.db.GetExpiringLeases(ctx, now, expiryWindow)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load expiring leases")
		return
	}
	for _, lease := range upcoming {
		s.logger.WithFields(logrus.Fields{
			"lease_id":   lease.ID,
			"listing_id": lease.ListingID,
			"end_date":   lease.EndDate.Format("2006-01-02"),
		}).Info("Lease approaching expiration")
	}
}

// Stop halts the loop and waits for an in-flight scan to finish.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
