package util

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatal("HashPassword() returned the plain password")
	}
	if !ComparePassword(hashed, "s3cret-pass") {
		t.Error("ComparePassword() = false for the right password")
	}
	if ComparePassword(hashed, "wrong") {
		t.Error("ComparePassword() = true for a wrong password")
	}
}

func TestGenerateOTP(t *testing.T) {
	for _, length := range []int{4, 6} {
		otp, err := GenerateOTP(length)
		if err != nil {
			t.Fatalf("GenerateOTP(%d) error: %v", length, err)
		}
		if len(otp) != length {
			t.Errorf("GenerateOTP(%d) = %q, want %d digits", length, otp, length)
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Errorf("GenerateOTP(%d) = %q contains non-digit %q", length, otp, r)
			}
		}
	}
	otp, err := GenerateOTP(0)
	if err != nil {
		t.Fatalf("GenerateOTP(0) error: %v", err)
	}
	if len(otp) != 4 {
		t.Errorf("GenerateOTP(0) = %q, want default length 4", otp)
	}
}
