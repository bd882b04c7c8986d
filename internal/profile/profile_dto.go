package profile

type UpdateNameRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=255"`
}

type UpdateTravelTimeRequest struct {
	TravelTimeMinutes *int `json:"travel_time_minutes" binding:"required,gte=0"`
}

type ProfileResponse struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	Role              string `json:"role"`
	TravelTimeMinutes int    `json:"travel_time_minutes"`
}
