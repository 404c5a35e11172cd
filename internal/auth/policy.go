package auth

import "github.com/google/uuid"

// Authorization policy: pure decisions over a principal and a resource.
// Absence of a matching grant is always a denial.

func CanCreateFranchise(p *Principal) bool {
	return p.IsAdmin()
}

// Franchisees may not delete their own franchise.
func CanDeleteFranchise(p *Principal) bool {
	return p.IsAdmin()
}

func CanCreateStore(p *Principal, franchiseID uuid.UUID) bool {
	return p.IsAdmin() || p.IsFranchiseeOf(franchiseID)
}

func CanDeleteStore(p *Principal, franchiseID uuid.UUID) bool {
	return p.IsAdmin() || p.IsFranchiseeOf(franchiseID)
}

func CanAddMenuItem(p *Principal) bool {
	return p.IsAdmin()
}

func CanUpdateUser(p *Principal, targetUserID uuid.UUID) bool {
	return p.IsAdmin() || p.ID == targetUserID
}

// Listing all franchises is open to any authenticated principal; listing
// a specific user's franchises is restricted to that user or an admin.
func CanListUserFranchises(p *Principal, userID uuid.UUID) bool {
	return p.IsAdmin() || p.ID == userID
}
