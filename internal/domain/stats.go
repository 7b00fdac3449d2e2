package domain

// MonthCounts compares the current calendar month with the previous one.
type MonthCounts struct {
	CurrentMonth int `json:"currentMonth"`
	LastMonth    int `json:"lastMonth"`
}

// RoleCounts is MonthCounts plus an all-time total for users holding a role.
type RoleCounts struct {
	Total        int `json:"total"`
	CurrentMonth int `json:"currentMonth"`
	LastMonth    int `json:"lastMonth"`
}

// DashboardStats is the headline block of the admin dashboard.
// The zero value is a valid "no data" result.
type DashboardStats struct {
	TotalUsers   int         `json:"totalUsers"`
	UsersJoined  MonthCounts `json:"usersJoined"`
	UserRole     RoleCounts  `json:"userRole"`
	TotalTrips   int         `json:"totalTrips"`
	TripsCreated MonthCounts `json:"tripsCreated"`
}

// GrowthPoint is the number of users who joined on a given day ("2006-01-02").
type GrowthPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// StyleCount is the number of trips sharing a travel style.
type StyleCount struct {
	TravelStyle string `json:"travelStyle"`
	Count       int    `json:"count"`
}

// StatsSnapshot bundles the backend-computed dashboard statistics so they can
// be cached and served together.
type StatsSnapshot struct {
	Stats        DashboardStats `json:"stats"`
	UserGrowth   []GrowthPoint  `json:"userGrowth"`
	TravelStyles []StyleCount   `json:"travelStyles"`
}
