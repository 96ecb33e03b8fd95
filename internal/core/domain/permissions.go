package domain

// Capability checks are pure, total functions of role alone: no hidden
// dependency on resource ownership, time, or feature flags. For bookings and
// analytics a narrower "all-access" variant (admin + manager) and a broader
// "own-scope" variant (adds stylist) exist side by side; the distinction is
// part of the contract and must not be collapsed.

func managerTier(r Role) bool {
	return r == RoleAdmin || r == RoleManager
}

// CanManageServices reports whether the role may edit the service catalogue.
func CanManageServices(r Role) bool { return managerTier(r) }

// CanManageAllBookings reports whether the role may manage every booking.
func CanManageAllBookings(r Role) bool { return managerTier(r) }

// CanManageBookings reports whether the role may manage bookings at all;
// stylists manage only their own, which the backend scopes server-side.
func CanManageBookings(r Role) bool { return managerTier(r) || r == RoleStylist }

// CanManagePayments reports whether the role may record or refund payments.
func CanManagePayments(r Role) bool { return managerTier(r) }

// CanManageCustomers reports whether the role may edit customer records.
func CanManageCustomers(r Role) bool { return managerTier(r) }

// CanManageStylists reports whether the role may edit stylist records.
func CanManageStylists(r Role) bool { return managerTier(r) }

// CanViewAllAnalytics reports whether the role sees shop-wide analytics.
func CanViewAllAnalytics(r Role) bool { return managerTier(r) }

// CanViewAnalytics reports whether the role sees any analytics; stylists see
// only their own figures.
func CanViewAnalytics(r Role) bool { return managerTier(r) || r == RoleStylist }

// CanManageSystemSettings is reserved for admins.
func CanManageSystemSettings(r Role) bool { return r == RoleAdmin }

// CanModerateReviews reports whether the role may approve or reject reviews.
func CanModerateReviews(r Role) bool { return managerTier(r) }
