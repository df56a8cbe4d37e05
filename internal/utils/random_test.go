package utils

import (
	"slices"
	"strings"
	"testing"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := GenerateRandomOTP()
		if len(otp) != 6 {
			t.Fatalf("OTP 长度 = %d，期望 6", len(otp))
		}
		for _, c := range otp {
			if c < '0' || c > '9' {
				t.Fatalf("OTP 中出现非数字字符: %s", otp)
			}
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	for _, length := range []int{8, 12, 32} {
		if got := len([]rune(GenerateRandomPassword(length))); got != length {
			t.Errorf("密码长度 = %d，期望 %d", got, length)
		}
	}
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser("test-password", "example.com")
	if err != nil {
		t.Fatalf("生成用户失败: %v", err)
	}

	if user.Username == "" || user.FullName == "" {
		t.Error("用户名和姓名不应该为空")
	}
	if !strings.HasSuffix(user.Email, "@example.com") {
		t.Errorf("邮箱 = %s，期望以 @example.com 结尾", user.Email)
	}
	if user.PasswordHash == "test-password" {
		t.Error("密码应该被哈希")
	}
}

func TestGenerateRandomPaper(t *testing.T) {
	paper := GenerateRandomPaper(7, "https://storage.example.com/conference-papers/papers/1.pdf")

	if paper.AuthorID != 7 {
		t.Errorf("AuthorID = %d，期望 7", paper.AuthorID)
	}
	if paper.Title == "" || paper.Abstract == "" {
		t.Error("标题和摘要不应该为空")
	}

	keywords := strings.Split(paper.Keywords, ",")
	if len(keywords) < 2 || len(keywords) > 4 {
		t.Errorf("关键词数量 = %d，期望 2~4", len(keywords))
	}
}

func TestGenerateRandomScore(t *testing.T) {
	for i := 0; i < 100; i++ {
		score := GenerateRandomScore()
		if score < 1 || score > 10 {
			t.Fatalf("评分 = %d，期望在 1~10 之间", score)
		}
	}
}

func TestGenerateRandomSubset(t *testing.T) {
	arr := []string{"a", "b", "c", "d"}

	subset := GenerateRandomSubset(arr, 2)
	if len(subset) != 2 {
		t.Errorf("子集大小 = %d，期望 2", len(subset))
	}

	// n 超过原数组长度时取整个数组
	subset = GenerateRandomSubset(arr, 10)
	if len(subset) != len(arr) {
		t.Errorf("子集大小 = %d，期望 %d", len(subset), len(arr))
	}

	// 原数组不应该被修改
	if !slices.Equal(arr, []string{"a", "b", "c", "d"}) {
		t.Error("原数组被修改了")
	}
}
