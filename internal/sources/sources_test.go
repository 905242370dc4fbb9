package sources

import "testing"

func TestIDIsValid(t *testing.T) {
	tests := []struct {
		id   ID
		want bool
	}{
		{PostgresID, true},
		{SampleID, true},
		{"bigquery", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.id.IsValid(); got != tt.want {
			t.Errorf("ID(%q).IsValid() = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestIDString(t *testing.T) {
	if PostgresID.String() != "postgres" {
		t.Errorf("PostgresID.String() = %q", PostgresID.String())
	}
	if len(IDs()) != 2 {
		t.Errorf("IDs() = %v, want two entries", IDs())
	}
}
