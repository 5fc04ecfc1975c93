package models

import (
	"errors"
	"testing"
)

func TestNormalizePageID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "bare hex",
			in:   "0fba34c9e6e145f9a4a2d7e69f4c9b2e",
			want: "0fba34c9-e6e1-45f9-a4a2-d7e69f4c9b2e",
		},
		{
			name: "already dashed",
			in:   "0fba34c9-e6e1-45f9-a4a2-d7e69f4c9b2e",
			want: "0fba34c9-e6e1-45f9-a4a2-d7e69f4c9b2e",
		},
		{
			name: "uppercase hex",
			in:   "0FBA34C9E6E145F9A4A2D7E69F4C9B2E",
			want: "0fba34c9-e6e1-45f9-a4a2-d7e69f4c9b2e",
		},
		{
			name:    "too short",
			in:      "0fba34c9",
			wantErr: true,
		},
		{
			name:    "too long",
			in:      "0fba34c9e6e145f9a4a2d7e69f4c9b2e0",
			wantErr: true,
		},
		{
			name:    "non-hex characters",
			in:      "zzba34c9e6e145f9a4a2d7e69f4c9b2e",
			wantErr: true,
		},
		{
			name:    "dashes at wrong offsets",
			in:      "0fba34c9e6e1-45f9-a4a2-d7e69f4c9b2e",
			wantErr: true,
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePageID(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPageID) {
					t.Errorf("NormalizePageID(%q) error = %v, want ErrInvalidPageID", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePageID(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePageID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizePageID_Idempotent(t *testing.T) {
	once, err := NormalizePageID("0fba34c9e6e145f9a4a2d7e69f4c9b2e")
	if err != nil {
		t.Fatalf("first normalize: %v", err)
	}
	twice, err := NormalizePageID(once)
	if err != nil {
		t.Fatalf("second normalize: %v", err)
	}
	if once != twice {
		t.Errorf("normalize not idempotent: %q != %q", once, twice)
	}

	for _, pos := range []int{8, 13, 18, 23} {
		if once[pos] != '-' {
			t.Errorf("expected dash at offset %d in %q", pos, once)
		}
	}
}
