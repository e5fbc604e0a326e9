package misc

import "testing"

func TestGetDisplayName(t *testing.T) {
	saved := status
	defer func() { status = saved }()

	status = "stable"
	if got, want := GetDisplayName(), "Web Style Extractor v"+GetVersion(); got != want {
		t.Errorf("GetDisplayName() = %q, want %q", got, want)
	}

	status = "beta"
	if got, want := GetDisplayName(), "Web Style Extractor v"+GetVersion()+"-beta"; got != want {
		t.Errorf("GetDisplayName() = %q, want %q", got, want)
	}
}
