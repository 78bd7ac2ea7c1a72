package services

import (
	"time"

	"github.com/nalaku/printshop-app/events"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
	"gorm.io/gorm"
)

// ChangeMonitor memantau order yang baru berubah dan menyiarkan refresh
// ke client websocket. Polling sederhana berbasis updated_at, cukup untuk
// satu instance aplikasi.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration

	lastSeen time.Time
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
		lastSeen: time.Now(),
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	cutoff := cm.lastSeen
	cm.lastSeen = time.Now()

	var orders []models.Order
	if err := cm.DB.Preload("OrderItems").
		Where("updated_at > ?", cutoff).
		Limit(100).
		Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching changed orders: %v", err)
		return
	}

	for _, order := range orders {
		events.BroadcastOrderUpdate(order)
	}
	if len(orders) > 0 {
		utils.InfoLogger.Printf("Broadcast %d order change(s)", len(orders))
		events.BroadcastDashboardRefresh()
	}
}
