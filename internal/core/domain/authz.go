package domain

// Capability names a protected action a view may require. Every role-gated
// page goes through Can instead of comparing role strings inline.
type Capability string

const (
	CapManageAdmins     Capability = "manage-admins"
	CapVerifyPayments   Capability = "verify-payments"
	CapViewSubscription Capability = "view-subscription"
	CapRecordPayment    Capability = "record-payment"
	CapManageBanners    Capability = "manage-banners"
	CapManageNotices    Capability = "manage-notifications"
)

// capabilities maps each role to the actions it may perform. Admin-account
// management and payment verification are super-admin only; subscription and
// payment recording belong to the business admin whose subscription it is.
var capabilities = map[Role]map[Capability]bool{
	RoleSuperAdmin: {
		CapManageAdmins:   true,
		CapVerifyPayments: true,
		CapManageBanners:  true,
		CapManageNotices:  true,
	},
	RoleAdmin: {
		CapViewSubscription: true,
		CapRecordPayment:    true,
		CapManageBanners:    true,
		CapManageNotices:    true,
	},
}

// Can reports whether the principal is allowed the given capability.
// A nil principal can do nothing.
func Can(p *Principal, cap Capability) bool {
	if p == nil {
		return false
	}
	return capabilities[p.Role][cap]
}
