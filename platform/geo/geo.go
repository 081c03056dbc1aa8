// Package geo provides best-effort request-IP geolocation.
// This is part of the platform layer and contains no business logic.
package geo

import (
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Resolver looks up a coarse location for an IP address. Lookups are
// best-effort: a missing database or unknown address yields "Unknown".
type Resolver interface {
	City(ip string) string
	Close() error
}

type maxmindResolver struct {
	reader *geoip2.Reader
}

// NewResolver opens a MaxMind city database at the given path. An empty path
// returns a resolver that always answers "Unknown".
func NewResolver(dbPath string) (Resolver, error) {
	if dbPath == "" {
		return noopResolver{}, nil
	}

	reader, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &maxmindResolver{reader: reader}, nil
}

func (r *maxmindResolver) City(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "Unknown"
	}

	record, err := r.reader.City(parsed)
	if err != nil || record == nil {
		return "Unknown"
	}

	country := record.Country.IsoCode
	city := record.City.Names["en"]
	switch {
	case country == "" && city == "":
		return "Unknown"
	case city == "":
		return country
	default:
		return country + ", " + city
	}
}

func (r *maxmindResolver) Close() error {
	return r.reader.Close()
}

type noopResolver struct{}

func (noopResolver) City(string) string { return "Unknown" }
func (noopResolver) Close() error       { return nil }
