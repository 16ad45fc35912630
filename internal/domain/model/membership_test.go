// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"testing"
)

func TestNewMembersModPayload(t *testing.T) {
	tests := []struct {
		name      string
		additions []string
		deletions []string
		expected  string
	}{
		{
			name:      "additions only",
			additions: []string{"u1", "u2"},
			deletions: []string{},
			expected:  `{"additions":[{"type":"user","id":"u1"},{"type":"user","id":"u2"}],"deletions":[]}`,
		},
		{
			name:     "both empty never omits keys",
			expected: `{"additions":[],"deletions":[]}`,
		},
		{
			name:      "additions and deletions",
			additions: []string{"u1"},
			deletions: []string{"u9"},
			expected:  `{"additions":[{"type":"user","id":"u1"}],"deletions":[{"type":"user","id":"u9"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(NewMembersModPayload(tt.additions, tt.deletions))
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.expected {
				t.Errorf("payload = %s, want %s", data, tt.expected)
			}
		})
	}
}

func TestAddMembersRequest_JSON(t *testing.T) {
	data, err := json.Marshal(AddMembersRequest{Users: []string{"id-1", "id-2"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"users":["id-1","id-2"]}` {
		t.Errorf("Marshal() = %s", data)
	}
}
