package youtube

import "testing"

func TestParseVideoIDRefs(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{name: "watch URL", ref: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch URL with extra params", ref: "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42", want: "dQw4w9WgXcQ"},
		{name: "short URL", ref: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed URL", ref: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "shorts URL", ref: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "bare id", ref: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "wrong length", ref: "dQw4w9WgXc", wantErr: true},
		{name: "unrelated URL", ref: "https://example.com/watch?v=dQw4w9WgXcQ", wantErr: true},
		{name: "empty", ref: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
