package storage

import (
	"testing"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/config"
)

func testStore() *PaperStore {
	cfg := &config.Config{}
	cfg.MinIO.PublicBaseURL = "https://storage.example.com/"
	cfg.MinIO.Bucket = "conference-papers"

	return &PaperStore{
		bucket: cfg.MinIO.Bucket,
		cfg:    cfg,
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	s := testStore()

	key := "papers/paper_1_abc.pdf"
	url := s.PublicURL(key)

	want := "https://storage.example.com/conference-papers/papers/paper_1_abc.pdf"
	if url != want {
		t.Errorf("PublicURL = %s，期望 %s", url, want)
	}

	got, err := s.KeyFromURL(url)
	if err != nil {
		t.Fatalf("KeyFromURL 失败: %v", err)
	}
	if got != key {
		t.Errorf("KeyFromURL = %s，期望 %s", got, key)
	}
}

func TestKeyFromURLRejectsForeignURL(t *testing.T) {
	s := testStore()

	if _, err := s.KeyFromURL("https://other.example.com/conference-papers/papers/1.pdf"); err == nil {
		t.Fatal("不属于当前对象存储的地址应该返回错误")
	}
}
