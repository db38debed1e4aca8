package utils

import "testing"

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dinner.jpg", "dinner.jpg"},
		{"my lunch photo.png", "my_lunch_photo.png"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"jollof rice & stew!.jpeg", "jollof_rice___stew_.jpeg"},
		{"...", "file"},
		{"", "file"},
	}

	for _, tt := range tests {
		if got := SecureFilename(tt.in); got != tt.want {
			t.Errorf("SecureFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
