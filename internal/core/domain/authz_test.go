package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	superAdmin := &Principal{ID: 1, Login: "root", Role: RoleSuperAdmin}
	admin := &Principal{ID: 2, UserName: "pasta-co", Role: RoleAdmin}

	tests := []struct {
		name       string
		principal  *Principal
		capability Capability
		want       bool
	}{
		{"super admin manages admins", superAdmin, CapManageAdmins, true},
		{"super admin verifies payments", superAdmin, CapVerifyPayments, true},
		{"super admin manages banners", superAdmin, CapManageBanners, true},
		{"super admin has no subscription", superAdmin, CapViewSubscription, false},
		{"super admin records no payments", superAdmin, CapRecordPayment, false},
		{"admin views subscription", admin, CapViewSubscription, true},
		{"admin records payments", admin, CapRecordPayment, true},
		{"admin manages notifications", admin, CapManageNotices, true},
		{"admin cannot manage admins", admin, CapManageAdmins, false},
		{"admin cannot verify payments", admin, CapVerifyPayments, false},
		{"nil principal can do nothing", nil, CapManageBanners, false},
		{"unknown role can do nothing", &Principal{Role: Role("guest")}, CapManageBanners, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.principal, tt.capability))
		})
	}
}

func TestIsSuperAdmin(t *testing.T) {
	assert.True(t, (&Principal{Role: RoleSuperAdmin}).IsSuperAdmin())
	assert.False(t, (&Principal{Role: RoleAdmin}).IsSuperAdmin())

	var nobody *Principal
	assert.False(t, nobody.IsSuperAdmin())
}
