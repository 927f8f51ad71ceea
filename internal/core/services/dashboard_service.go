package services

import (
	"context"
	"log"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/core/domain"
)

// DashboardService aggregates the numbers shown on the dashboard landing page
type DashboardService struct {
	api *backend.Client
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(api *backend.Client) *DashboardService {
	return &DashboardService{api: api}
}

// RecentNotificationLimit caps the recent-activity list on the dashboard
const RecentNotificationLimit = 5

// Stats collects banner/notification counts and, for business admins, the
// subscription status card. A failed subscription fetch degrades to a
// dashboard without the card rather than failing the page.
func (s *DashboardService) Stats(ctx context.Context, principal *domain.Principal) (*domain.DashboardStats, []domain.Notification, error) {
	banners, err := s.api.ListBanners(ctx)
	if err != nil {
		return nil, nil, err
	}

	notifications, err := s.api.ListNotifications(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats := &domain.DashboardStats{
		Banners:       len(banners),
		Notifications: len(notifications),
	}

	if !principal.IsSuperAdmin() {
		info, err := s.api.SubscriptionInfo(ctx)
		if err != nil {
			log.Printf("⚠️ Failed to fetch subscription info: %v", err)
		} else {
			stats.Subscription = info
			if info.Admin != nil {
				stats.Users = info.Admin.Users
			}
		}
	}

	recent := notifications
	if len(recent) > RecentNotificationLimit {
		recent = recent[:RecentNotificationLimit]
	}

	return stats, recent, nil
}
