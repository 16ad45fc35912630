// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestUser_ToRecord(t *testing.T) {
	tests := []struct {
		name     string
		user     *User
		expected UserRecord
	}{
		{
			name: "complete user",
			user: &User{
				ID:         "9d1b-01",
				Username:   "jdoe",
				Email:      "jdoe@example.com",
				Roles:      []string{"$member", "$guest"},
				Personas:   []string{"p-1", "p-2"},
				GroupCount: 3,
			},
			expected: UserRecord{
				UserID:     "9d1b-01",
				Email:      "jdoe@example.com",
				Roles:      []string{"$member", "$guest"},
				Personas:   []string{"p-1", "p-2"},
				GroupCount: 3,
			},
		},
		{
			name: "nil lists become empty lists",
			user: &User{ID: "9d1b-02", Username: "asmith"},
			expected: UserRecord{
				UserID:   "9d1b-02",
				Roles:    []string{},
				Personas: []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.user.ToRecord()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ToRecord() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestUser_UserSanitize(t *testing.T) {
	user := &User{ID: " id-1 ", Username: "\tjdoe\n", Email: " jdoe@example.com "}
	user.UserSanitize()

	if user.ID != "id-1" || user.Username != "jdoe" || user.Email != "jdoe@example.com" {
		t.Errorf("UserSanitize() left untrimmed fields: %+v", user)
	}
}

func TestNewUserSnapshot(t *testing.T) {
	users := []*User{
		{ID: "id-3", Username: "zed"},
		{ID: "id-1", Username: "amy"},
		nil,
		{ID: "id-x", Username: ""},
		{ID: "id-2", Username: "bob"},
		{ID: "id-1b", Username: "amy"},
	}

	snapshot := NewUserSnapshot(users)

	if snapshot.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", snapshot.Len())
	}
	if got, want := snapshot.Keys(), []string{"zed", "amy", "bob"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got, want := UserIDs(snapshot), []string{"id-3", "id-1b", "id-2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("UserIDs() = %v, want %v", got, want)
	}
}

func TestUserSnapshot_JSON(t *testing.T) {
	snapshot := NewUserSnapshot([]*User{
		{ID: "id-2", Username: "zed", Email: "zed@example.com", Roles: []string{"$admin"}, GroupCount: 1},
		{ID: "id-1", Username: "amy", Email: "amy@example.com"},
	})

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	expected := `{
  "zed": {
    "user_id": "id-2",
    "email": "zed@example.com",
    "roles": [
      "$admin"
    ],
    "personas": [],
    "groups": 1
  },
  "amy": {
    "user_id": "id-1",
    "email": "amy@example.com",
    "roles": [],
    "personas": [],
    "groups": 0
  }
}`
	if string(data) != expected {
		t.Errorf("MarshalIndent() =\n%s\nwant\n%s", data, expected)
	}

	loaded := NewSnapshot[UserRecord]()
	if err := json.Unmarshal(data, loaded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got, want := loaded.Keys(), []string{"zed", "amy"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after round trip = %v, want %v", got, want)
	}
	record, ok := loaded.Get("zed")
	if !ok {
		t.Fatal("Get(zed) not found after round trip")
	}
	if !reflect.DeepEqual(record.Roles, []string{"$admin"}) || record.GroupCount != 1 {
		t.Errorf("unexpected record after round trip: %+v", record)
	}
}

func TestEmptySnapshot_JSON(t *testing.T) {
	var snapshot *UserSnapshot = NewSnapshot[UserRecord]()

	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Marshal() = %s, want {}", data)
	}
	if len(snapshot.Keys()) != 0 || len(UserIDs(snapshot)) != 0 {
		t.Error("empty snapshot should have no keys or ids")
	}
}
