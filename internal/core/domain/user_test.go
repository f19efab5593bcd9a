package domain

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		input    string
		expected Role
	}{
		{input: "admin", expected: RoleAdmin},
		{input: "UserRole.ADMIN", expected: RoleAdmin},
		{input: "UserRole.PENANGGUNG_JAWAB", expected: RolePenanggungJawab},
		{input: "Viewer", expected: RoleViewer},
		{input: " viewer ", expected: RoleViewer},
	}

	for _, tt := range tests {
		if got := NormalizeRole(tt.input); got != tt.expected {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRoleGating(t *testing.T) {
	if !RoleAdmin.CanManageUsers() {
		t.Error("admin must be able to manage users")
	}
	if RolePenanggungJawab.CanManageUsers() {
		t.Error("penanggung_jawab must not manage users")
	}
	if RoleViewer.CanManageUsers() {
		t.Error("viewer must not manage users")
	}

	if !RoleAdmin.CanMutateAssets() || !RolePenanggungJawab.CanMutateAssets() {
		t.Error("admin and penanggung_jawab must be able to mutate assets")
	}
	if RoleViewer.CanMutateAssets() {
		t.Error("viewer must be read-only")
	}
}

func TestUserInputValidate(t *testing.T) {
	tests := []struct {
		name            string
		input           UserInput
		requirePassword bool
		expectError     bool
	}{
		{
			name:            "valid create",
			input:           UserInput{Username: "budi", Password: "secret1", Role: RoleViewer},
			requirePassword: true,
		},
		{
			name:            "create without password",
			input:           UserInput{Username: "budi", Role: RoleViewer},
			requirePassword: true,
			expectError:     true,
		},
		{
			name:  "update without password keeps it unchanged",
			input: UserInput{Username: "budi", Role: RoleAdmin},
		},
		{
			name:        "short password",
			input:       UserInput{Username: "budi", Password: "abc", Role: RoleViewer},
			expectError: true,
		},
		{
			name:        "short username",
			input:       UserInput{Username: "ab", Password: "secret1", Role: RoleViewer},
			expectError: true,
		},
		{
			name:        "bad role",
			input:       UserInput{Username: "budi", Password: "secret1", Role: "superuser"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate(tt.requirePassword)
			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
