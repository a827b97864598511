package gcs

import "testing"

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://bucket/records.json", "bucket", "records.json", false},
		{"gs://bucket/a/b/records.json", "bucket", "a/b/records.json", false},
		{"gs://bucket", "", "", true},
		{"gs://bucket/", "", "", true},
		{"gs:///records.json", "", "", true},
		{"/tmp/records.json", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := ParseURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("ParseURI(%q) = (%q, %q), want (%q, %q)", tt.uri, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("gs://bucket/folder/statement.xlsx"); got != "statement.xlsx" {
		t.Errorf("Filename() = %q, want statement.xlsx", got)
	}
	if got := Filename("gs://bucket"); got != "bucket" {
		t.Errorf("Filename() = %q, want bucket", got)
	}
}

func TestContentType(t *testing.T) {
	if got := contentType("x/records.JSON"); got != "application/json" {
		t.Errorf("contentType json = %q", got)
	}
	if got := contentType("x/blob"); got != "application/octet-stream" {
		t.Errorf("contentType default = %q", got)
	}
}
