package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserJSONNeverIncludesPasswordHash(t *testing.T) {
	user := User{Email: "alice@test.com", Name: "Alice", PasswordHash: "$2a$12$secret"}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}

	if strings.Contains(string(data), "secret") || strings.Contains(strings.ToLower(string(data)), "password") {
		t.Errorf("password hash leaked into JSON: %s", data)
	}
}
