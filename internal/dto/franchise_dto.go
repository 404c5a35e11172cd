package dto

type FranchiseAdminRef struct {
	Email string `json:"email"`
}

type CreateFranchiseRequest struct {
	Name   string              `json:"name"`
	Admins []FranchiseAdminRef `json:"admins"`
}

type CreateStoreRequest struct {
	Name string `json:"name"`
}
