package token

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantBody    string
		wantFlags   string
		wantOpen    byte
		wantClose   byte
		wantErr     bool
	}{
		{"slash delimited", "/abc/i", "abc", "i", '/', '/', false},
		{"hash delimited no flags", "#a.b#", "a.b", "", '#', '#', false},
		{"brace paired", "{a(b)c}mi", "a(b)c", "mi", '{', '}', false},
		{"escaped closing delimiter", `/a\/b/`, `a\/b`, "", '/', '/', false},
		{"empty source", "", "", "", 0, 0, true},
		{"alnum opener invalid", "abc", "", "", 0, 0, true},
		{"unterminated", "/abc", "", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, body, close, flags, err := Split(tt.source)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Split(%q) error = %v, wantErr %v", tt.source, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if open != tt.wantOpen || close != tt.wantClose {
				t.Errorf("Split(%q) delimiters = %q/%q, want %q/%q", tt.source, open, close, tt.wantOpen, tt.wantClose)
			}
			if body != tt.wantBody {
				t.Errorf("Split(%q) body = %q, want %q", tt.source, body, tt.wantBody)
			}
			if flags != tt.wantFlags {
				t.Errorf("Split(%q) flags = %q, want %q", tt.source, flags, tt.wantFlags)
			}
		})
	}
}
