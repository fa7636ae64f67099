package fieldtype

import "testing"

func TestCamelKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"due_date", "dueDate"},
		{"last_contact", "lastContact"},
		{"created_at", "createdAt"},
		{"a_b_c", "aBC"},
		{"already", "already"},
		{"address_2", "address_2"},
		{"line_1", "line_1"},
		{"a__b", "a_B"},
		{"col_", "col_"},
	}

	for _, tt := range tests {
		if got := CamelKey(tt.in); got != tt.want {
			t.Errorf("CamelKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToDBColumnRoundTrip(t *testing.T) {
	cols := []string{
		"name", "due_date", "last_contact", "created_at", "updated_at",
		"amount", "phone_number", "email_address", "status", "x1_y2",
		"address_2", "line_1", "a__b", "col_", "a_b_2c",
	}

	for _, col := range cols {
		if got := ToDBColumn(CamelKey(col)); got != col {
			t.Errorf("round trip %q -> %q -> %q", col, CamelKey(col), got)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "Name"},
		{"due_date", "Due Date"},
		{"user_id", "User ID"},
		{"api_url", "API URL"},
		{"ip_address", "IP Address"},
		{"last_contact", "Last Contact"},
	}

	for _, tt := range tests {
		if got := Label(tt.in); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
