package api

import "testing"

func TestSuccessEnvelope(t *testing.T) {
	env := success(UploadResponse{Key: "abc", Size: 3})
	if env.Code != "00000" || env.Message != "success" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	resp, ok := env.Data.(UploadResponse)
	if !ok || resp.Key != "abc" || resp.Size != 3 {
		t.Fatalf("unexpected data: %+v", env.Data)
	}
}

func TestFailureEnvelope(t *testing.T) {
	env := failure("10001", "No data uploaded")
	if env.Code != "10001" || env.Message != "No data uploaded" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Data != nil {
		t.Fatalf("expected nil data, got %v", env.Data)
	}
}
