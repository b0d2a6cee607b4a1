package errors

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"results.json", FormatJSON, false},
		{"dir/Results.XLSX", FormatXLSX, false},
		{"book.xlsm", FormatXLSX, false},
		{"effects.csv", FormatCSV, false},
		{"notes.txt", "", true},
		{"noext", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestValidateTickBudget(t *testing.T) {
	if err := ValidateTickBudget(40); err != nil {
		t.Errorf("ValidateTickBudget(40) = %v", err)
	}
	if err := ValidateTickBudget(0); err != nil {
		t.Errorf("ValidateTickBudget(0) = %v", err)
	}
	err := ValidateTickBudget(-1)
	if err == nil {
		t.Fatal("ValidateTickBudget(-1) should fail")
	}
	if GetCode(err) != ErrCodeInvalidOptions {
		t.Errorf("GetCode = %v, want %v", GetCode(err), ErrCodeInvalidOptions)
	}
}
