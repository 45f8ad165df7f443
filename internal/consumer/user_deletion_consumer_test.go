package consumer

import "testing"

func TestUsernameFromMessage(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]interface{}
		want   string
	}{
		{
			name:   "plain field",
			values: map[string]interface{}{"username": "heinz"},
			want:   "heinz",
		},
		{
			name:   "json payload",
			values: map[string]interface{}{"payload": `{"username":"heinz","email":"h@example.org"}`},
			want:   "heinz",
		},
		{
			name:   "plain field wins over payload",
			values: map[string]interface{}{"username": "heinz", "payload": `{"username":"gerda"}`},
			want:   "heinz",
		},
		{
			name:   "broken payload",
			values: map[string]interface{}{"payload": `{"username":`},
			want:   "",
		},
		{
			name:   "empty message",
			values: map[string]interface{}{},
			want:   "",
		},
		{
			name:   "non-string username",
			values: map[string]interface{}{"username": 42},
			want:   "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UsernameFromMessage(tc.values); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
