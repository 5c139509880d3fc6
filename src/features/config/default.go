package config

var defaultConfig = Config{
	Server: Server{
		PrintRoutes: false,
		Port:        3636,
	},
	Logger: Logger{
		Enabled: true,
		Level:   "info",
		Format:  "text",
	},
	Cache: Cache{
		TTLMinutes:   60,
		SweepMinutes: 10,
	},
	Fetcher: Fetcher{
		UserAgent:      "",
		TimeoutSeconds: 12,
		Retries:        3,
		BackoffMs:      300,
		Proxies:        []string{},
	},
	Throttle: Throttle{
		Max:           30,
		WindowSeconds: 60,
	},
	Sources: map[string]Source{
		"lyrics-api": {
			Enabled: true,
			Secret:  nil, // Set via LYRICS_API_TOKEN
		},
		"aggregator-site": {
			Enabled: true,
		},
		"web-search": {
			Enabled: true,
		},
	},
}
