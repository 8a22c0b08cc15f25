package weather

// Catalog maps a city name to the location identifier understood by the
// configured forecast source. Loaded once at startup and never mutated.
// City names deliberately contain no underscore: downstream file names are
// "<city>_weather.json" and the aggregation key is the part before the
// first underscore.
type Catalog map[string]string

// DefaultCatalog returns the built-in set of tracked cities keyed by their
// forecast-archive slugs.
func DefaultCatalog() Catalog {
	return Catalog{
		"MOSCOW":      "moscow",
		"PARIS":       "paris",
		"LONDON":      "london",
		"BERLIN":      "berlin",
		"BEIJING":     "beijing",
		"KAZAN":       "kazan",
		"SPETERSBURG": "spetersburg",
		"VOLGOGRAD":   "volgograd",
		"NOVOSIBIRSK": "novosibirsk",
		"KALININGRAD": "kaliningrad",
		"ABUDHABI":    "abudhabi",
		"WARSZAWA":    "warszawa",
		"BUCHAREST":   "bucharest",
		"ROMA":        "roma",
		"CAIRO":       "cairo",
		"GIZA":        "giza",
		"MADRID":      "madrid",
		"TORONTO":     "toronto",
	}
}
