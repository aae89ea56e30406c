package user

import "testing"

func TestSignUpRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SignUpRequest
		wantErr string
	}{
		{name: "valid", req: SignUpRequest{Email: "a@b.com", Password: "123456"}},
		{name: "missing email", req: SignUpRequest{Password: "123456"}, wantErr: "email is required"},
		{name: "invalid email", req: SignUpRequest{Email: "bad", Password: "123456"}, wantErr: "Invalid email address"},
		{name: "weak password", req: SignUpRequest{Email: "a@b.com", Password: "12345"}, wantErr: "Password is too weak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.wantErr)
			}
			if got := err.Error(); got != tt.wantErr {
				t.Fatalf("error = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestSignUpRequest_Normalize(t *testing.T) {
	r := SignUpRequest{Email: "  Jane@Example.COM ", DisplayName: " Jane "}
	r.Normalize()
	if r.Email != "jane@example.com" {
		t.Errorf("email = %q", r.Email)
	}
	if r.DisplayName != "Jane" {
		t.Errorf("displayName = %q", r.DisplayName)
	}
}

func TestSignInRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SignInRequest
		wantErr string
	}{
		{name: "valid", req: SignInRequest{Email: "a@b.com", Password: "secret"}},
		{name: "missing email", req: SignInRequest{Password: "secret"}, wantErr: "email is required"},
		{name: "missing password", req: SignInRequest{Email: "a@b.com"}, wantErr: "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
