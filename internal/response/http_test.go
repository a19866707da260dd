package response

import (
	"encoding/json"
	"testing"
)

func TestAPIResponseOmitsEmptyFields(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"empty list", APIResponse[[]string]{Success: true}, `{"success":true}`},
		{"with data", APIResponse[[]string]{Success: true, Message: "ok", Data: []string{"2026"}}, `{"success":true,"message":"ok","data":["2026"]}`},
		{"error", ErrorResponse{Error: "tab \"x\" not found"}, `{"error":"tab \"x\" not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("json = %s, want %s", got, tt.want)
			}
		})
	}
}
