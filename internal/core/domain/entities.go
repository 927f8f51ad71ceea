package domain

import "time"

// Role represents the role attached to a signed-in principal.
//
// The backend does not return a role field; the role is stitched onto the
// principal by whichever login flow succeeded. It is a UI-gating hint only —
// real authorization is enforced by the backend on every request.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
)

// Principal represents the signed-in user as seen by the portal.
type Principal struct {
	ID          uint   `json:"id"`
	Login       string `json:"login,omitempty"`
	UserName    string `json:"user_name,omitempty"`
	Email       string `json:"email,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	SystemID    string `json:"system_id,omitempty"`
	Role        Role   `json:"role"`
}

// IsSuperAdmin reports whether the principal signed in through the
// super-admin flow.
func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Role == RoleSuperAdmin
}

// Session is the single source of truth for "who is logged in and with what
// credential". Token and Principal are present together or not at all.
type Session struct {
	ID        string // public identifier, safe for logs
	Token     string // opaque bearer credential issued by the backend
	Principal *Principal
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// ============================================================
// Backend DTOs — mirrored as the backend returns them
// ============================================================

// Admin represents a per-business admin account.
type Admin struct {
	ID              uint      `json:"id"`
	UserName        string    `json:"user_name"`
	Email           string    `json:"email"`
	CompanyName     string    `json:"company_name"`
	SystemID        string    `json:"system_id"`
	SystemToken     string    `json:"system_token,omitempty"`
	SMSToken        string    `json:"sms_token,omitempty"`
	SMSEmail        string    `json:"sms_email,omitempty"`
	SMSPassword     string    `json:"sms_password,omitempty"`
	SMSMessage      string    `json:"sms_message,omitempty"`
	PaymentUsername string    `json:"payment_username,omitempty"`
	PaymentPassword string    `json:"payment_password,omitempty"`
	Users           int       `json:"users,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// Banner represents a promotional banner.
type Banner struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image"`
	AdminID   uint      `json:"admin_id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Notification represents a push notification record.
type Notification struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Payload   string    `json:"payload,omitempty"`
	AdminID   uint      `json:"admin_id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// SubscriptionTier represents a plan tier.
type SubscriptionTier struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	MinUsers    int     `json:"min_users"`
	MaxUsers    int     `json:"max_users"` // 0 = unlimited
}

// SubscriptionInfo represents the current subscription status of a business.
type SubscriptionInfo struct {
	SubscriptionStatus    string            `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time        `json:"subscription_expires_at"`
	MonthlyFee            float64           `json:"monthly_fee"`
	IsAccessRestricted    bool              `json:"is_access_restricted"`
	CurrentTier           *SubscriptionTier `json:"current_tier"`
	RecommendedTier       *SubscriptionTier `json:"recommended_tier"`
	Admin                 *Admin            `json:"admin"`
}

// Payment status values as used by the backend.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// Payment represents a recorded subscription payment.
type Payment struct {
	ID            uint       `json:"id"`
	AdminID       uint       `json:"admin_id"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	TransactionID string     `json:"transaction_id"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status"`
	PeriodStart   *time.Time `json:"period_start"`
	PeriodEnd     *time.Time `json:"period_end"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
}

// DashboardStats aggregates the numbers shown on the dashboard landing page.
type DashboardStats struct {
	Banners       int               `json:"banners"`
	Notifications int               `json:"notifications"`
	Users         int               `json:"users"`
	Subscription  *SubscriptionInfo `json:"subscription,omitempty"`
}
