package publication

// Samples returns the fixed entries offered when no provider has data.
// A fresh slice is returned on every call.
func Samples() []Publication {
	return []Publication{
		{
			Title:   "Machine Learning Approaches for Edge Computing",
			Authors: "Chen, M., Wilson, J., & Johnson, S.",
			Venue:   "IEEE Transactions on Edge Computing",
			Year:    "2024",
			URL:     PlaceholderURL,
		},
		{
			Title:   "Distributed AI Systems for Real-time Industrial Applications",
			Authors: "Johnson, S., Rodriguez, A., & Chen, M.",
			Venue:   "Journal of Intelligent Manufacturing",
			Year:    "2023",
			URL:     PlaceholderURL,
		},
		{
			Title:   "Edge Intelligence for Smart City Infrastructure",
			Authors: "Rodriguez, A., Chen, M., & Wilson, J.",
			Venue:   "Smart Cities Journal",
			Year:    "2023",
			URL:     PlaceholderURL,
		},
		{
			Title:   "Energy-Efficient Algorithms for IoT Networks",
			Authors: "Wilson, J., Johnson, S., & Rodriguez, A.",
			Venue:   "ACM Transactions on IoT",
			Year:    "2022",
			URL:     PlaceholderURL,
		},
	}
}
