package repository

import (
	"strings"
	"testing"
)

func TestDirectoryQueriesTargetTheSingletonRow(t *testing.T) {
	queries := map[string]string{
		"get":                   getDirectoryQuery,
		"set role":              setRoleQuery,
		"remove role":           removeRoleQuery,
		"set notification pref": setNotificationPrefQuery,
	}

	for name, query := range queries {
		if !strings.Contains(strings.ToLower(query), "where id = 1") {
			t.Fatalf("%s query must carry the complete singleton predicate, got %q", name, query)
		}
	}
}

func TestMutationQueriesBumpTheVersion(t *testing.T) {
	for name, query := range map[string]string{
		"set role":              setRoleQuery,
		"remove role":           removeRoleQuery,
		"set notification pref": setNotificationPrefQuery,
	} {
		if !strings.Contains(query, "version = version + 1") {
			t.Fatalf("%s query must increment the directory version", name)
		}
	}
}
