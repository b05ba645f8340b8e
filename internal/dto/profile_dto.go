package dto

type GetProfileResponse struct {
	Name     string   `json:"name"`
	Behavior string   `json:"behavior"`
	Tone     string   `json:"tone"`
	Problems []string `json:"problems"`
}

// UpdateProfileRequest is a partial update; empty fields keep their stored
// values.
type UpdateProfileRequest struct {
	Name     string   `json:"name"`
	Behavior string   `json:"behavior"`
	Tone     string   `json:"tone"`
	Problems []string `json:"problems"`
}
